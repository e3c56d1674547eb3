// Package console implements an embeddable command interpreter.
//
// A [Console] binds Go variables ("cvars") and Go functions ("commands") to
// names, then executes line-oriented text against them:
//
//	c := console.New()
//	health := 100
//	_ = console.BindVar(c, "health", &health)
//	_ = c.Bind("fib", fib)
//
//	_ = c.ExecuteString("set health (fib 10); get health", os.Stdout)
//
// # Grammar
//
//	line       := command-id WS argument*
//	argument   := token | "(" line ")"
//	multi-line := line ((DELIM | NEWLINE) line)*
//
// A parenthesized argument is executed with its output captured, and the
// trimmed output is parsed as the argument. Nesting is one level deep; the
// nested text ends at the first ')'.
//
// # Built-in commands
//
//   - set <cvar id> <value>
//   - get <cvar id>
//   - help, cvars, procs
//   - + - * / on float64, % on int
//
// # Diagnostics
//
// Failures are written to the output as lines beginning with
// [DiagnosticPrefix]. An unknown command stops [Console.Execute]; every other
// failure is reported and execution continues with the next command.
//
// # Types
//
// Arguments and variables are converted with the codecs of a
// [codec.Registry]. Any integer, unsigned, floating-point, bool, string or
// [time.Duration] type is supported, as is any named type of those kinds and
// any type whose pointer implements [encoding.TextUnmarshaler].
package console
