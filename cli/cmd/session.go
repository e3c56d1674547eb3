package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/noclip/console"
	"github.com/ardnew/noclip/log"
)

// Predefined session errors.
var (
	ErrReadSession = NewError("read session variables")
	ErrVarType     = NewError("unsupported variable type")
	ErrBindVar     = NewError("bind session variable")
)

// SessionKey is the key of the variable list in the configuration file.
const SessionKey = "vars"

// VarDecl declares one session variable in the configuration file.
type VarDecl struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value string `yaml:"value,omitempty"`
}

// Session holds the variables declared in the configuration file.
type Session struct {
	Vars []VarDecl `yaml:"vars"`
}

var varTypes = map[string]reflect.Type{
	"bool":     reflect.TypeFor[bool](),
	"duration": reflect.TypeFor[time.Duration](),
	"float32":  reflect.TypeFor[float32](),
	"float64":  reflect.TypeFor[float64](),
	"int":      reflect.TypeFor[int](),
	"int8":     reflect.TypeFor[int8](),
	"int16":    reflect.TypeFor[int16](),
	"int32":    reflect.TypeFor[int32](),
	"int64":    reflect.TypeFor[int64](),
	"string":   reflect.TypeFor[string](),
	"uint":     reflect.TypeFor[uint](),
	"uint8":    reflect.TypeFor[uint8](),
	"uint16":   reflect.TypeFor[uint16](),
	"uint32":   reflect.TypeFor[uint32](),
	"uint64":   reflect.TypeFor[uint64](),
}

// VarTypes returns the sorted names of the types a session variable may
// declare.
func VarTypes() []string {
	names := make([]string, 0, len(varTypes))
	for name := range varTypes {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// SampleVars returns the variables written by the init command.
func SampleVars() []VarDecl {
	return []VarDecl{
		{Name: "health", Type: "int", Value: "100"},
		{Name: "speed", Type: "float64", Value: "1.5"},
		{Name: "godmode", Type: "bool", Value: "false"},
		{Name: "player", Type: "string", Value: "gordon"},
		{Name: "path", Type: "string", Value: "/usr/bin"},
		{Name: "respawn", Type: "duration", Value: "5s"},
	}
}

// LoadSession reads the session variables from the YAML file at path.
// A missing file yields an empty session.
func LoadSession(ctx context.Context, path string) (Session, error) {
	var s Session

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}

		return s, ErrReadSession.Wrap(err).With(slog.String("file", path))
	}

	if err := yaml.UnmarshalContext(ctx, data, &s); err != nil {
		return s, ErrReadSession.Wrap(err).With(slog.String("file", path))
	}

	return s, nil
}

// Bind allocates storage for every declared variable, binds it to c and
// assigns its initial value. Storage lives as long as the binding.
func (s Session) Bind(ctx context.Context, c *console.Console) error {
	var errs []error

	for _, v := range s.Vars {
		if err := v.bind(c); err != nil {
			errs = append(errs, err)

			continue
		}

		log.DebugContext(ctx, "session variable",
			slog.String("name", v.Name),
			slog.String("type", v.Type),
			slog.String("value", v.Value),
		)
	}

	return errors.Join(errs...)
}

func (v VarDecl) bind(c *console.Console) error {
	typ, ok := varTypes[v.Type]
	if !ok {
		return ErrVarType.
			With(slog.String("name", v.Name), slog.String("type", v.Type))
	}

	ptr := reflect.New(typ)

	if err := c.BindVar(v.Name, ptr.Interface()); err != nil {
		return ErrBindVar.Wrap(err).With(slog.String("name", v.Name))
	}

	if v.Value == "" {
		return nil
	}

	// Strings may contain spaces, which "set" would split.
	if typ.Kind() == reflect.String {
		err := c.Store(v.Name, v.Value)
		if err != nil {
			return ErrBindVar.Wrap(err).With(slog.String("name", v.Name))
		}

		return nil
	}

	if err := c.Assign(v.Name, v.Value); err != nil {
		c.UnbindVar(v.Name)

		return ErrBindVar.Wrap(err).With(slog.String("name", v.Name))
	}

	return nil
}
