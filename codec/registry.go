package codec

import (
	"errors"
	"reflect"
)

// Sentinel errors.
var (
	ErrInvalidSyntax = errors.New("invalid syntax")
	ErrEmpty         = errors.New("empty input")
	ErrNoCodec       = errors.New("no codec for type")
)

// Registry maps Go types to their codecs.
//
// A Registry is not safe for concurrent mutation. Register all custom codecs
// before handing the registry to a console.
type Registry struct {
	codecs map[reflect.Type]Any
}

// NewRegistry returns a registry holding codecs for every integer, unsigned
// and floating-point kind, string, bool and [time.Duration].
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[reflect.Type]Any)}

	for _, c := range builtins() {
		r.Add(c)
	}

	return r
}

// Add registers the erased codec c for its type, replacing any existing one.
func (r *Registry) Add(c Any) {
	r.codecs[c.Type()] = c
}

// Register adds a typed codec to r.
func Register[T any](r *Registry, c Codec[T]) {
	r.Add(Erase(c))
}

// Lookup returns the codec for t.
//
// Types without an exact registration fall back, in order, to a
// [encoding.TextUnmarshaler] implementation on *t and then to the codec of
// the basic kind underlying t.
func (r *Registry) Lookup(t reflect.Type) (Any, bool) {
	if t == nil {
		return nil, false
	}

	if c, ok := r.codecs[t]; ok {
		return c, true
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return text{typ: t}, true
	}

	if base, ok := r.codecs[kindType(t.Kind())]; ok && t.ConvertibleTo(base.Type()) {
		return converted{base: base, typ: t}, true
	}

	return nil, false
}

// For returns the typed codec for T.
func For[T any](r *Registry) (Codec[T], bool) {
	c, ok := r.Lookup(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}

	if e, ok := c.(erased[T]); ok {
		return e.codec, true
	}

	return Funcs[T]{
		ParseFunc: func(s string) (T, error) {
			var zero T

			v, err := c.ParseValue(s)
			if err != nil {
				return zero, err
			}

			t, _ := v.Interface().(T)

			return t, nil
		},
		FormatFunc: func(t T) string {
			return c.FormatValue(reflect.ValueOf(&t).Elem())
		},
	}, true
}

// kindType returns the predeclared type for a basic kind, or nil.
func kindType(k reflect.Kind) reflect.Type {
	switch k {
	case reflect.Int:
		return reflect.TypeFor[int]()
	case reflect.Int8:
		return reflect.TypeFor[int8]()
	case reflect.Int16:
		return reflect.TypeFor[int16]()
	case reflect.Int32:
		return reflect.TypeFor[int32]()
	case reflect.Int64:
		return reflect.TypeFor[int64]()
	case reflect.Uint:
		return reflect.TypeFor[uint]()
	case reflect.Uint8:
		return reflect.TypeFor[uint8]()
	case reflect.Uint16:
		return reflect.TypeFor[uint16]()
	case reflect.Uint32:
		return reflect.TypeFor[uint32]()
	case reflect.Uint64:
		return reflect.TypeFor[uint64]()
	case reflect.Uintptr:
		return reflect.TypeFor[uintptr]()
	case reflect.Float32:
		return reflect.TypeFor[float32]()
	case reflect.Float64:
		return reflect.TypeFor[float64]()
	case reflect.Bool:
		return reflect.TypeFor[bool]()
	case reflect.String:
		return reflect.TypeFor[string]()
	default:
		return nil
	}
}
