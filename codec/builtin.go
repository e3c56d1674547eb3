package codec

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

func parseInt[T ~int | ~int8 | ~int16 | ~int32 | ~int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
		}

		return T(n), nil
	}
}

func formatInt[T ~int | ~int8 | ~int16 | ~int32 | ~int64](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func parseUint[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
		}

		return T(n), nil
	}
}

func formatUint[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

func parseFloat[T ~float32 | ~float64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
		}

		return T(f), nil
	}
}

func formatFloat[T ~float32 | ~float64](bits int) func(T) string {
	return func(v T) string {
		return strconv.FormatFloat(float64(v), 'g', -1, bits)
	}
}

// builtins returns the codecs registered by [NewRegistry].
func builtins() []Any {
	return []Any{
		Erase[int](Funcs[int]{parseInt[int](strconv.IntSize), formatInt[int]}),
		Erase[int8](Funcs[int8]{parseInt[int8](8), formatInt[int8]}),
		Erase[int16](Funcs[int16]{parseInt[int16](16), formatInt[int16]}),
		Erase[int32](Funcs[int32]{parseInt[int32](32), formatInt[int32]}),
		Erase[int64](Funcs[int64]{parseInt[int64](64), formatInt[int64]}),
		Erase[uint](Funcs[uint]{parseUint[uint](strconv.IntSize), formatUint[uint]}),
		Erase[uint8](Funcs[uint8]{parseUint[uint8](8), formatUint[uint8]}),
		Erase[uint16](Funcs[uint16]{parseUint[uint16](16), formatUint[uint16]}),
		Erase[uint32](Funcs[uint32]{parseUint[uint32](32), formatUint[uint32]}),
		Erase[uint64](Funcs[uint64]{parseUint[uint64](64), formatUint[uint64]}),
		Erase[uintptr](Funcs[uintptr]{parseUint[uintptr](64), formatUint[uintptr]}),
		Erase[float32](Funcs[float32]{parseFloat[float32](32), formatFloat[float32](32)}),
		Erase[float64](Funcs[float64]{parseFloat[float64](64), formatFloat[float64](64)}),
		Erase[bool](Funcs[bool]{parseBool, strconv.FormatBool}),
		Erase[string](Funcs[string]{parseString, func(s string) string { return s }}),
		Erase[time.Duration](Funcs[time.Duration]{parseDuration, time.Duration.String}),
	}
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}

	return b, nil
}

func parseString(s string) (string, error) {
	if s == "" {
		return "", ErrEmpty
	}

	return s, nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}

	return d, nil
}

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
)

// text is the codec for any type whose pointer implements
// [encoding.TextUnmarshaler].
type text struct {
	typ reflect.Type
}

func (c text) Type() reflect.Type { return c.typ }

func (c text) ParseValue(s string) (reflect.Value, error) {
	p := reflect.New(c.typ)

	u, _ := p.Interface().(encoding.TextUnmarshaler)

	err := u.UnmarshalText([]byte(s))
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}

	return p.Elem(), nil
}

func (c text) FormatValue(v reflect.Value) string {
	// Prefer the addressable form so pointer-receiver methods are found.
	p := reflect.New(c.typ)
	p.Elem().Set(v)

	switch {
	case p.Type().Implements(textMarshalerType):
		m, _ := p.Interface().(encoding.TextMarshaler)

		b, err := m.MarshalText()
		if err == nil {
			return string(b)
		}

	case p.Type().Implements(stringerType):
		s, _ := p.Interface().(fmt.Stringer)

		return s.String()
	}

	return fmt.Sprint(v.Interface())
}
