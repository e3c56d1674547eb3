package cmdlib

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"

	"github.com/ardnew/noclip/console"
)

// Predefined errors (sentinel values).
var (
	ErrExprCompile  = console.NewError("failed to compile expression")
	ErrExprEvaluate = console.NewError("failed to evaluate expression")
	ErrFibRange     = console.NewError("fibonacci index out of range")
	ErrNotString    = console.NewError("variable is not a string")
)

// maxFib is the largest index whose Fibonacci number fits in a uint64.
const maxFib = 93

// Register binds every stock command to c.
func Register(c *console.Console) error {
	return errors.Join(
		c.BindFunc("echo", Echo),
		c.Bind("fib", Fib),
		c.BindFunc("expr", Expr(c)),
		c.BindFunc("pathprefix", PathPrefix(c)),
		usage(c, "echo", "echo <text...>"),
		usage(c, "expr", "expr <expression>"),
		usage(c, "pathprefix", "pathprefix <cvar id> <item>..."),
	)
}

func usage(c *console.Console, name, text string) error {
	if !c.SetUsage(name, text) {
		return console.ErrUnknownCommand.Wrapf("%q", name)
	}

	return nil
}

// Echo writes the rest of the line.
func Echo(in *console.Input, out io.Writer) {
	_, _ = io.WriteString(out, in.Rest()+"\n")
}

// Fib returns the n-th Fibonacci number.
func Fib(n int) (uint64, error) {
	if n < 0 || n > maxFib {
		return 0, ErrFibRange.Wrapf("%d not in [0, %d]", n, maxFib)
	}

	var a, b uint64 = 0, 1
	for range n {
		a, b = b, a+b
	}

	return a, nil
}

// Expr returns a command that evaluates the rest of the line as an
// expr-lang expression. Every variable bound to c is visible by name.
func Expr(c *console.Console) console.Func {
	return func(in *console.Input, out io.Writer) {
		source := in.Rest()
		if source == "" {
			c.Report(out, console.ErrMissingArgument.Wrapf("expression"))

			return
		}

		env := c.Values()

		program, err := expr.Compile(source, expr.Env(env))
		if err != nil {
			c.Report(out, ErrExprCompile.Wrap(err).
				With(slog.String("source", source)))

			return
		}

		result, err := expr.Run(program, env)
		if err != nil {
			c.Report(out, ErrExprEvaluate.Wrap(err).
				With(slog.String("source", source)))

			return
		}

		_, _ = fmt.Fprintln(out, result)
	}
}

// PathPrefix returns a command that prepends items to a string variable
// holding a list separated by [os.PathListSeparator] and writes the new
// value.
func PathPrefix(c *console.Console) console.Func {
	return func(in *console.Input, out io.Writer) {
		name, ok := in.Token()
		if !ok {
			in.Clear()
			c.Report(out, console.ErrArgumentTypes.Wrapf("usage: pathprefix <cvar id> <item>..."))

			return
		}

		v, ok := c.Value(name)
		if !ok {
			c.Report(out, console.ErrUnknownVariable.Wrapf("%q", name))

			return
		}

		subject, ok := v.(string)
		if !ok {
			c.Report(out, ErrNotString.Wrapf("%q", name))

			return
		}

		var items []string

		for {
			in.SkipSpace()

			if _, more := in.Peek(); !more {
				break
			}

			item := console.Evaluate[string](c, in)
			if in.Failed() {
				c.Report(out, console.ErrArgumentTypes.Wrap(in.Err()))
				in.Clear()

				return
			}

			items = append(items, item)
		}

		value := prefix(subject, items...)

		if err := c.Store(name, value); err != nil {
			c.Report(out, err)

			return
		}

		_, _ = io.WriteString(out, value+"\n")
	}
}

func prefix(subject string, items ...string) string {
	return strings.TrimSpace(mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items...),
	).String())
}
