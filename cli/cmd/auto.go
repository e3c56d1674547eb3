package cmd

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/ardnew/noclip/log"
)

// Auto selects the REPL when stdin is a terminal and otherwise executes the
// commands read from stdin.
type Auto struct {
	KeepGoing bool `help:"Continue past unknown commands when reading stdin" short:"k"`
}

// Run executes the default command.
func (a *Auto) Run(ctx context.Context) error {
	interactive := isTerminal(os.Stdin)

	log.TraceContext(ctx, "select mode", slog.Bool("interactive", interactive))

	if interactive {
		return new(Repl).Run(ctx)
	}

	return (&Exec{KeepGoing: a.KeepGoing}).Run(ctx)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
