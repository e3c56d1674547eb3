package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/noclip/cli/cmd"
	"github.com/ardnew/noclip/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from a
// YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// Each top-level key names a flag, in either its hyphenated (log-level) or
// underscored (log_level) form. The session variable list under "vars" is
// not a flag and is read separately by [cmd.LoadSession].
//
// Example configuration file:
//
//	log-level: debug
//	delimiter: ";"
//	max-expr-len: 256
//	vars:
//	  - name: health
//	    type: int
//	    value: "100"
//
// Command-line flags override config file values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				// Malformed file - ignore it and let Kong use defaults
				log.WarnContext(ctx, "ignoring configuration",
					slog.String("error", err.Error()),
				)
			}

			return config{}, nil
		}

		return makeConfig(doc), nil
	}
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// makeConfig converts a decoded YAML document to flag values.
func makeConfig(doc map[string]any) config {
	cfg := make(config, len(doc))

	for key, val := range doc {
		if key == cmd.SessionKey {
			continue
		}

		cfg[key] = flagString(val)
	}

	return cfg
}

// flagString converts numbers to strings; Kong parses numeric flags from
// their text.
func flagString(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)

	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagString(e)
		}

		return out

	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// Unknown keys are ignored so a file can carry other tools' settings.
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
