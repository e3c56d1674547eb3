package console

import (
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/ardnew/noclip/codec"
)

var (
	writerType = reflect.TypeFor[io.Writer]()
	errorType  = reflect.TypeFor[error]()
)

// signature describes how a bound function's parameters are read and its
// results are written.
type signature struct {
	params  []codec.Any
	results []codec.Any

	// writer is set when the first parameter is an [io.Writer], which
	// receives the output sink instead of a parsed argument.
	writer bool
	// errResult is set when the last result is an error.
	errResult bool
}

func newSignature(r *codec.Registry, t reflect.Type) (signature, error) {
	var sig signature

	if t.Kind() != reflect.Func {
		return sig, ErrNotFunc.Wrapf("%s", t)
	}

	if t.IsVariadic() {
		return sig, ErrSignature.Wrapf("variadic function %s", t)
	}

	i := 0
	if t.NumIn() > 0 && t.In(0) == writerType {
		sig.writer = true
		i = 1
	}

	for ; i < t.NumIn(); i++ {
		cd, ok := r.Lookup(t.In(i))
		if !ok {
			return sig, ErrNoCodec.Wrapf("parameter %d: %s", i, t.In(i))
		}

		sig.params = append(sig.params, cd)
	}

	n := t.NumOut()
	if n > 0 && t.Out(n-1) == errorType {
		sig.errResult = true
		n--
	}

	for j := range n {
		cd, ok := r.Lookup(t.Out(j))
		if !ok {
			return sig, ErrNoCodec.Wrapf("result %d: %s", j, t.Out(j))
		}

		sig.results = append(sig.results, cd)
	}

	return sig, nil
}

// usage returns a synopsis such as "fib <int>".
func (s signature) usage(name string) string {
	var sb strings.Builder

	sb.WriteString(name)

	for _, p := range s.params {
		sb.WriteString(" <")
		sb.WriteString(p.Type().String())
		sb.WriteString(">")
	}

	return sb.String()
}

// reify erases fn into a [Func] that reads each argument left to right,
// then calls fn only if every argument parsed.
func (c *Console) reify(name string, fn reflect.Value, sig signature) Func {
	return func(in *Input, out io.Writer) {
		args := make([]reflect.Value, 0, len(sig.params)+1)

		if sig.writer {
			args = append(args, reflect.ValueOf(&out).Elem())
		}

		for _, p := range sig.params {
			arg := reflect.New(p.Type()).Elem()
			if v, ok := c.evaluate(in, p); ok {
				arg.Set(v)
			}

			args = append(args, arg)
		}

		if in.Failed() {
			c.logger.Debug("argument evaluation failed",
				slog.String("command", name), slog.Any("error", in.Err()))

			in.Clear()

			usage, _ := c.Usage(name)
			c.diagnose(out, ErrArgumentTypes.Wrapf("usage: %s", usage))

			return
		}

		results := fn.Call(args)

		if sig.errResult {
			last := results[len(results)-1]
			results = results[:len(results)-1]

			if !last.IsNil() {
				err, _ := last.Interface().(error)
				c.diagnose(out, ErrCommandFailed.Wrap(err))

				return
			}
		}

		for i, r := range results {
			_, _ = io.WriteString(out, sig.results[i].FormatValue(r)+"\n")
		}
	}
}
