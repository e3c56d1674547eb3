package console

import (
	"io"
	"log/slog"
	"reflect"
	"slices"
)

var reserved = []string{"set", "get", "help", "cvars", "procs", "+", "-", "*", "/", "%"}

// IsReserved reports whether name belongs to a built-in command.
func IsReserved(name string) bool {
	return slices.Contains(reserved, name)
}

// Builtins returns the names of the built-in commands.
func Builtins() []string {
	return slices.Clone(reserved)
}

const helpText = `
-- Console Help --
    set <cvar id> <value>
    get <cvar id>
    help : outputs help message
    cvars : list bound console variables
    procs : list bound console commands
    + - * / <lhs> <rhs> : floating-point arithmetic
    % <lhs> <rhs> : integer remainder

Arguments may be nested commands: + (- 3 2) (* 4 5)

`

func (c *Console) bindBuiltins() {
	c.commands["set"] = command{fn: c.set, usage: "set <cvar id> <value>"}
	c.commands["get"] = command{fn: c.get, usage: "get <cvar id>"}
	c.commands["help"] = command{fn: help, usage: "help"}
	c.commands["cvars"] = command{fn: c.cvars, usage: "cvars"}
	c.commands["procs"] = command{fn: c.procs, usage: "procs"}

	arith := map[string]any{
		"+": func(a, b float64) float64 { return a + b },
		"-": func(a, b float64) float64 { return a - b },
		"*": func(a, b float64) float64 { return a * b },
		"/": func(a, b float64) float64 { return a / b },
		"%": func(a, b int) (int, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}

			return a % b, nil
		},
	}

	for name, fn := range arith {
		v := reflect.ValueOf(fn)

		sig, err := newSignature(c.codecs, v.Type())
		if err != nil {
			// A registry without float64 or int codecs leaves the
			// operator unbound.
			c.logger.Warn("built-in unavailable", slog.Any("error", err))

			continue
		}

		c.commands[name] = command{fn: c.reify(name, v, sig), usage: sig.usage(name)}
	}
}

func (c *Console) set(in *Input, out io.Writer) {
	name, ok := in.Token()
	if !ok {
		in.Clear()
		c.diagnose(out, ErrArgumentTypes.Wrapf("usage: %s", "set <cvar id> <value>"))

		return
	}

	v, ok := c.vars[name]
	if !ok {
		c.diagnose(out, ErrUnknownVariable.Wrapf("%q", name))

		return
	}

	val, ok := c.evaluate(in, v.codec)
	if !ok {
		in.Clear()
		c.diagnose(out, ErrTypeMismatch.Wrapf("variable %q is of type %s", name, v.codec.Type()))

		return
	}

	v.ptr.Elem().Set(val)
}

func (c *Console) get(in *Input, out io.Writer) {
	name, ok := in.Token()
	if !ok {
		in.Clear()
		c.diagnose(out, ErrArgumentTypes.Wrapf("usage: %s", "get <cvar id>"))

		return
	}

	v, ok := c.vars[name]
	if !ok {
		c.diagnose(out, ErrUnknownVariable.Wrapf("%q", name))

		return
	}

	_, _ = io.WriteString(out, v.codec.FormatValue(v.ptr.Elem())+"\n")
}

func help(_ *Input, out io.Writer) {
	_, _ = io.WriteString(out, helpText)
}

func (c *Console) cvars(_ *Input, out io.Writer) {
	names := c.VarNames()
	if len(names) == 0 {
		_, _ = io.WriteString(out, "There are no bound console variables...\n")

		return
	}

	writeList(out, names)
}

func (c *Console) procs(_ *Input, out io.Writer) {
	names := slices.DeleteFunc(c.CommandNames(), IsReserved)
	if len(names) == 0 {
		_, _ = io.WriteString(out, "There are no bound console commands...\n")

		return
	}

	writeList(out, names)
}

func writeList(w io.Writer, names []string) {
	_, _ = io.WriteString(w, "\n")

	for _, name := range names {
		_, _ = io.WriteString(w, "    "+name+"\n")
	}

	_, _ = io.WriteString(w, "\n")
}
