package codec

import (
	"reflect"
)

// Codec converts values of type T to and from their textual form.
//
// Parse receives a single token (or the trimmed output of a nested command)
// and must reject text that is not a complete encoding of T.
type Codec[T any] interface {
	Parse(text string) (T, error)
	Format(v T) string
}

// Any is the type-erased form of a [Codec] used by the console to convert
// arguments whose type is known only at run time.
type Any interface {
	// Type returns the Go type produced by ParseValue.
	Type() reflect.Type
	// ParseValue parses text into a value assignable to Type.
	ParseValue(text string) (reflect.Value, error)
	// FormatValue formats v, which must be assignable to Type.
	FormatValue(v reflect.Value) string
}

// Funcs adapts a pair of ordinary functions to the [Codec] interface.
type Funcs[T any] struct {
	ParseFunc  func(string) (T, error)
	FormatFunc func(T) string
}

// Parse implements [Codec].
func (f Funcs[T]) Parse(text string) (T, error) { return f.ParseFunc(text) }

// Format implements [Codec].
func (f Funcs[T]) Format(v T) string { return f.FormatFunc(v) }

// Erase returns the type-erased form of c.
func Erase[T any](c Codec[T]) Any {
	return erased[T]{
		codec: c,
		typ:   reflect.TypeFor[T](),
	}
}

type erased[T any] struct {
	codec Codec[T]
	typ   reflect.Type
}

func (e erased[T]) Type() reflect.Type { return e.typ }

func (e erased[T]) ParseValue(text string) (reflect.Value, error) {
	v, err := e.codec.Parse(text)
	if err != nil {
		return reflect.Value{}, err
	}

	// Taking the address keeps interface-typed T from collapsing into its
	// dynamic type.
	return reflect.ValueOf(&v).Elem(), nil
}

func (e erased[T]) FormatValue(v reflect.Value) string {
	t, _ := v.Interface().(T)

	return e.codec.Format(t)
}

// converted adapts a codec for a basic kind to a named type sharing that
// kind, e.g. "type Health int".
type converted struct {
	base Any
	typ  reflect.Type
}

func (c converted) Type() reflect.Type { return c.typ }

func (c converted) ParseValue(text string) (reflect.Value, error) {
	v, err := c.base.ParseValue(text)
	if err != nil {
		return reflect.Value{}, err
	}

	return v.Convert(c.typ), nil
}

func (c converted) FormatValue(v reflect.Value) string {
	return c.base.FormatValue(v.Convert(c.base.Type()))
}
