package cmd

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/noclip/console"
	"github.com/ardnew/noclip/log"
)

// Exec executes console command lines and script files.
type Exec struct {
	Eval      []string `help:"Execute a command line (repeatable)"                       short:"e"`
	KeepGoing bool     `help:"Continue past unknown commands instead of stopping"        short:"k"`
	Files     []string `arg:"" help:"Script file(s) to execute or '-' for stdin" optional:""`
}

// Run executes the exec command.
//
// Lines given with --eval run first, in order, followed by the files. With
// neither, commands are read from stdin.
func (e *Exec) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	c, err := consoleFrom(ctx)
	if err != nil {
		return err
	}

	out := outputFrom(ctx)

	for _, line := range e.Eval {
		if err := e.execute(ctx, c, "eval", strings.NewReader(line), out); err != nil {
			return err
		}
	}

	files := e.Files
	if len(files) == 0 && len(e.Eval) == 0 {
		files = []string{stdinSource}
	}

	srcs, err := openSources(files)
	if err != nil {
		return err
	}

	defer closeSources(srcs)

	for _, src := range srcs {
		if err := e.execute(ctx, c, src.name, src.r, out); err != nil {
			return err
		}
	}

	return nil
}

// execute runs every command in r. With KeepGoing, execution resumes after
// an unknown command with the next command in r.
func (e *Exec) execute(
	ctx context.Context,
	c *console.Console,
	name string,
	r io.Reader,
	w io.Writer,
) error {
	log.TraceContext(ctx, "exec source", slog.String("source", name))

	// Buffer once so resuming does not drop input read ahead by Execute.
	var rs io.Reader = r
	if _, ok := r.(io.RuneScanner); !ok {
		rs = bufio.NewReader(r)
	}

	for {
		err := c.Execute(rs, w)

		switch {
		case err == nil:
			return nil

		case errors.Is(err, console.ErrUnknownCommand) && e.KeepGoing:
			log.DebugContext(ctx, "exec resume", slog.String("source", name))

			continue

		default:
			return ErrExecute.Wrap(err).With(slog.String("source", name))
		}
	}
}
