package console

import (
	"io"
	"log/slog"
	"reflect"
	"slices"

	"github.com/ardnew/noclip/codec"
	"github.com/ardnew/noclip/log"
)

// Default settings.
const (
	DefaultDelimiter  = ';'
	DefaultMaxExprLen = 256
)

// Func is the uniform signature every command is erased into.
// It reads its arguments from in and writes any output to out.
type Func func(in *Input, out io.Writer)

type command struct {
	fn    Func
	usage string
}

type variable struct {
	ptr   reflect.Value // *T, never owned by the console
	codec codec.Any
}

// Console is a table of bound variables and commands together with the
// interpreter that executes text against it.
//
// A Console holds pointers to caller storage and receivers without owning
// them. Unbind a name before its storage or receiver becomes invalid.
//
// A Console is not safe for concurrent use.
type Console struct {
	commands map[string]command
	vars     map[string]variable
	codecs   *codec.Registry
	logger   log.Logger

	delim      rune
	maxExprLen int

	// diagnostics counts diagnostic lines written since creation, so a
	// nested execution can tell whether it failed.
	diagnostics int
}

type options struct {
	codecs     *codec.Registry
	logger     log.Logger
	delim      rune
	maxExprLen int
}

// Option configures a [Console] created with [New].
type Option func(options) options

// WithDelimiter sets the rune separating commands on one line.
func WithDelimiter(r rune) Option {
	return func(o options) options {
		if r != 0 && r != '(' && r != ')' {
			o.delim = r
		}

		return o
	}
}

// WithMaxExprLen sets the longest nested "(...)" expression, in runes.
func WithMaxExprLen(n int) Option {
	return func(o options) options {
		if n > 0 {
			o.maxExprLen = n
		}

		return o
	}
}

// WithLogger sets the logger used to trace dispatch and diagnostics.
func WithLogger(l log.Logger) Option {
	return func(o options) options {
		o.logger = l

		return o
	}
}

// WithCodecs sets the codec registry used to parse and format values.
func WithCodecs(r *codec.Registry) Option {
	return func(o options) options {
		if r != nil {
			o.codecs = r
		}

		return o
	}
}

// New returns a Console with the built-in commands bound.
func New(opts ...Option) *Console {
	o := options{
		delim:      DefaultDelimiter,
		maxExprLen: DefaultMaxExprLen,
	}

	for _, opt := range opts {
		if opt != nil {
			o = opt(o)
		}
	}

	if o.codecs == nil {
		o.codecs = codec.NewRegistry()
	}

	c := &Console{
		commands:   make(map[string]command),
		vars:       make(map[string]variable),
		codecs:     o.codecs,
		logger:     o.logger,
		delim:      o.delim,
		maxExprLen: o.maxExprLen,
	}

	c.bindBuiltins()

	return c
}

// Registry returns the codec registry used by c.
func (c *Console) Registry() *codec.Registry { return c.codecs }

// Delimiter returns the rune separating commands on one line.
func (c *Console) Delimiter() rune { return c.delim }

// Usage returns the usage text of the named command, or the bare name if
// the command has none.
func (c *Console) Usage(name string) (string, bool) {
	cmd, ok := c.commands[name]
	if !ok {
		return "", false
	}

	if cmd.usage == "" {
		return name, true
	}

	return cmd.usage, true
}

// SetUsage replaces the usage text of a bound command.
// It reports false if no command has that name.
func (c *Console) SetUsage(name, usage string) bool {
	cmd, ok := c.commands[name]
	if !ok {
		return false
	}

	cmd.usage = usage
	c.commands[name] = cmd

	return true
}

// HasCommand reports whether a command is bound to name.
func (c *Console) HasCommand(name string) bool {
	_, ok := c.commands[name]

	return ok
}

// HasVar reports whether a variable is bound to name.
func (c *Console) HasVar(name string) bool {
	_, ok := c.vars[name]

	return ok
}

// CommandNames returns the sorted names of all bound commands, including the
// built-in ones.
func (c *Console) CommandNames() []string {
	return sortedKeys(c.commands)
}

// VarNames returns the sorted names of all bound variables.
func (c *Console) VarNames() []string {
	return sortedKeys(c.vars)
}

// Value returns the current value of the named variable.
func (c *Console) Value(name string) (any, bool) {
	v, ok := c.vars[name]
	if !ok {
		return nil, false
	}

	return v.ptr.Elem().Interface(), true
}

// Values returns a snapshot of every bound variable keyed by name.
func (c *Console) Values() map[string]any {
	m := make(map[string]any, len(c.vars))
	for name, v := range c.vars {
		m[name] = v.ptr.Elem().Interface()
	}

	return m
}

// Format returns the textual form of the named variable's value.
func (c *Console) Format(name string) (string, bool) {
	v, ok := c.vars[name]
	if !ok {
		return "", false
	}

	return v.codec.FormatValue(v.ptr.Elem()), true
}

// Report writes err as a diagnostic line to w. Commands bound with
// [Console.BindFunc] use it to report their own failures.
func (c *Console) Report(w io.Writer, err error) { c.diagnose(w, err) }

func (c *Console) diagnose(w io.Writer, err error) {
	c.diagnostics++

	c.logger.Debug("diagnostic", slog.Any("error", err))

	Report(w, err)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
