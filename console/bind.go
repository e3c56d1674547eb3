package console

import (
	"io"
	"log/slog"
	"reflect"
	"strings"
	"unicode"
)

// BindVar binds the variable at ptr to name, replacing any variable already
// bound to that name.
//
// The console keeps ptr but does not own it; call [Console.UnbindVar] before
// the storage becomes invalid.
func BindVar[T any](c *Console, name string, ptr *T) error {
	return c.BindVar(name, ptr)
}

// BindVar binds the variable referenced by the non-nil pointer ref to name,
// replacing any variable already bound to that name.
//
// "set name value" parses value with the codec for the pointed-to type and
// stores it only if parsing succeeds. "get name" writes the formatted value.
func (c *Console) BindVar(name string, ref any) error {
	if err := c.validName(name); err != nil {
		return err
	}

	ptr := reflect.ValueOf(ref)
	if !ptr.IsValid() || ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return ErrNotPointer.With(slog.String("name", name))
	}

	typ := ptr.Type().Elem()

	cd, ok := c.codecs.Lookup(typ)
	if !ok {
		return ErrNoCodec.Wrapf("%s", typ).With(slog.String("name", name))
	}

	c.vars[name] = variable{ptr: ptr, codec: cd}

	c.logger.Debug("bind variable",
		slog.String("name", name), slog.String("type", typ.String()))

	return nil
}

// Bind binds the function fn to name as a command, replacing any command
// already bound to that name.
//
// Every parameter of fn must have a codec, except a leading [io.Writer]
// parameter, which receives the output sink. Results are formatted one per
// line; a trailing error result, if non-nil, is reported as a diagnostic
// instead. A fn of type [Func] is bound as with [Console.BindFunc].
func (c *Console) Bind(name string, fn any) error {
	switch f := fn.(type) {
	case Func:
		return c.BindFunc(name, f)
	case func(*Input, io.Writer):
		return c.BindFunc(name, f)
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return ErrNotFunc.With(slog.String("name", name))
	}

	return c.bindValue(name, v)
}

// BindMethod binds the exported method of receiver with the given name.
// The receiver is kept but not owned; see [Console.BindVar].
func (c *Console) BindMethod(name string, receiver any, method string) error {
	rv := reflect.ValueOf(receiver)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return ErrNoMethod.Wrapf("nil receiver").With(slog.String("name", name))
	}

	m := rv.MethodByName(method)
	if !m.IsValid() {
		return ErrNoMethod.Wrapf("%s.%s", rv.Type(), method).
			With(slog.String("name", name))
	}

	return c.bindValue(name, m)
}

// BindFunc binds a command that reads its own arguments from the input.
// Use [Evaluate] to read typed arguments and [Console.Report] to write
// diagnostics.
func (c *Console) BindFunc(name string, fn Func) error {
	if err := c.validCommand(name); err != nil {
		return err
	}

	if fn == nil {
		return ErrNotFunc.With(slog.String("name", name))
	}

	c.commands[name] = command{fn: fn}

	c.logger.Debug("bind command", slog.String("name", name))

	return nil
}

func (c *Console) bindValue(name string, fn reflect.Value) error {
	if err := c.validCommand(name); err != nil {
		return err
	}

	sig, err := newSignature(c.codecs, fn.Type())
	if err != nil {
		return WrapError(err).With(slog.String("name", name))
	}

	c.commands[name] = command{
		fn:    c.reify(name, fn, sig),
		usage: sig.usage(name),
	}

	c.logger.Debug("bind command",
		slog.String("name", name), slog.String("type", fn.Type().String()))

	return nil
}

// UnbindVar removes the variable bound to name, if any.
func (c *Console) UnbindVar(name string) {
	delete(c.vars, name)
}

// Unbind removes the command bound to name, if any.
// Built-in commands cannot be removed.
func (c *Console) Unbind(name string) {
	if IsReserved(name) {
		return
	}

	delete(c.commands, name)
}

// Assign parses text as the value of the named variable, as "set" would,
// and stores it. Text may be a parenthesized command. The variable is left
// unchanged on error.
func (c *Console) Assign(name, text string) error {
	v, ok := c.vars[name]
	if !ok {
		return ErrUnknownVariable.Wrapf("%q", name)
	}

	in := NewInputString(text)

	val, ok := c.evaluate(in, v.codec)
	if !ok {
		return ErrTypeMismatch.Wrap(in.Err()).With(slog.String("name", name))
	}

	v.ptr.Elem().Set(val)

	return nil
}

// Store sets the named variable to v, which must be assignable or
// convertible to the variable's type.
func (c *Console) Store(name string, v any) error {
	vr, ok := c.vars[name]
	if !ok {
		return ErrUnknownVariable.Wrapf("%q", name)
	}

	dst := vr.ptr.Elem()
	val := reflect.ValueOf(v)

	switch {
	case !val.IsValid():
		return ErrTypeMismatch.Wrapf("variable %q is of type %s", name, dst.Type())
	case val.Type().AssignableTo(dst.Type()):
		dst.Set(val)
	case val.Type().ConvertibleTo(dst.Type()) && val.Kind() == dst.Kind():
		dst.Set(val.Convert(dst.Type()))
	default:
		return ErrTypeMismatch.Wrapf("variable %q is of type %s", name, dst.Type())
	}

	return nil
}

func (c *Console) validName(name string) error {
	if name == "" || strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == c.delim || r == '(' || r == ')'
	}) {
		return ErrInvalidName.Wrapf("%q", name)
	}

	return nil
}

func (c *Console) validCommand(name string) error {
	if err := c.validName(name); err != nil {
		return err
	}

	if IsReserved(name) {
		return ErrReservedName.Wrapf("%q", name)
	}

	return nil
}
