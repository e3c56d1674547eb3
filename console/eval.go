package console

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"

	"github.com/ardnew/noclip/codec"
)

// Evaluate reads one argument of type T from in.
//
// An argument is either a single whitespace-delimited token or a nested
// command enclosed in parentheses, whose output is parsed as T. Nesting is
// one level deep: the nested text ends at the first ')'.
//
// On failure the failure flag of in is set and the zero value is returned.
// Once the flag is set, Evaluate consumes nothing.
func Evaluate[T any](c *Console, in *Input) T {
	var zero T

	cd, ok := c.codecs.Lookup(reflect.TypeFor[T]())
	if !ok {
		in.Fail(ErrNoCodec.Wrapf("%s", reflect.TypeFor[T]()))

		return zero
	}

	v, ok := c.evaluate(in, cd)
	if !ok {
		return zero
	}

	t, _ := v.Interface().(T)

	return t
}

func (c *Console) evaluate(in *Input, cd codec.Any) (reflect.Value, bool) {
	if in.Failed() {
		return reflect.Value{}, false
	}

	in.SkipSpace()

	var text string

	if r, ok := in.Peek(); ok && r == '(' {
		in.next()

		s, ok := c.nested(in)
		if !ok {
			return reflect.Value{}, false
		}

		text = s
	} else {
		tok, ok := in.Token()
		if !ok {
			return reflect.Value{}, false
		}

		text = tok
	}

	v, err := cd.ParseValue(text)
	if err != nil {
		in.Fail(err)

		return reflect.Value{}, false
	}

	return v, true
}

// nested executes the parenthesized text following an already consumed '('
// and returns its trimmed output.
func (c *Console) nested(in *Input) (string, bool) {
	src, err := in.ReadUntil(')', c.maxExprLen)
	if err != nil {
		in.Fail(err)

		return "", false
	}

	c.logger.Trace("evaluate nested", slog.String("source", src))

	var buf bytes.Buffer

	before := c.diagnostics

	_ = c.execute(NewInputString(src), &buf)

	if c.diagnostics != before || hasDiagnostic(buf.String()) {
		in.Fail(ErrNestedCommand.Wrapf("(%s): %s", src, strings.TrimSpace(buf.String())))

		return "", false
	}

	return strings.TrimSpace(buf.String()), true
}

// hasDiagnostic reports whether any line of out is a diagnostic.
func hasDiagnostic(out string) bool {
	for line := range strings.Lines(out) {
		if strings.HasPrefix(line, DiagnosticPrefix) {
			return true
		}
	}

	return false
}
