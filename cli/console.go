package cli

import (
	"context"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/kong"

	"github.com/ardnew/noclip/cli/cmd"
	"github.com/ardnew/noclip/cmdlib"
	"github.com/ardnew/noclip/console"
	"github.com/ardnew/noclip/log"
)

// ErrDelimiter is returned when the configured delimiter is not one rune.
var ErrDelimiter = cmd.NewError("delimiter must be a single character")

type consoleConfig struct {
	Delimiter  string `default:"${consoleDelimiter}"  help:"Command delimiter character."`
	MaxExprLen int    `default:"${consoleMaxExprLen}" help:"Maximum length of a nested expression."`
	NoStock    bool   `default:"false"                help:"Do not bind the stock command library."`
}

func (*consoleConfig) vars() kong.Vars {
	return kong.Vars{
		"consoleDelimiter":  string(console.DefaultDelimiter),
		"consoleMaxExprLen": strconv.Itoa(console.DefaultMaxExprLen),
	}
}

func (*consoleConfig) group() kong.Group {
	var group kong.Group

	group.Key = "console"
	group.Title = "Console options"

	return group
}

// build creates the session console and binds the stock commands and the
// session variables declared in the configuration file at confPath.
func (f *consoleConfig) build(
	ctx context.Context,
	confPath string,
) (*console.Console, error) {
	delim, size := utf8.DecodeRuneInString(f.Delimiter)
	if size == 0 || size != len(f.Delimiter) || delim == utf8.RuneError {
		return nil, ErrDelimiter.With(slog.String("delimiter", f.Delimiter))
	}

	c := console.New(
		console.WithDelimiter(delim),
		console.WithMaxExprLen(f.MaxExprLen),
		console.WithLogger(log.Default()),
	)

	if !f.NoStock {
		if err := cmdlib.Register(c); err != nil {
			return nil, err
		}
	}

	session, err := cmd.LoadSession(ctx, confPath)
	if err != nil {
		return nil, err
	}

	// A bad declaration costs only its own variable.
	if err := session.Bind(ctx, c); err != nil {
		log.WarnContext(ctx, "session variables",
			slog.String("error", err.Error()),
		)
	}

	log.DebugContext(ctx, "console initialized",
		slog.String("delimiter", string(delim)),
		slog.Int("max_expr_len", f.MaxExprLen),
		slog.Bool("stock", !f.NoStock),
		slog.Int("vars", len(c.VarNames())),
		slog.Int("commands", len(c.CommandNames())),
	)

	return c, nil
}
