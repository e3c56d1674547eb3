package cmd

import (
	"context"

	"github.com/ardnew/noclip/cli/cmd/repl"
	"github.com/ardnew/noclip/log"
)

// Repl starts the interactive console.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	c, err := consoleFrom(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, c, kongVar(ctx, CacheIdentifier), log.Default())
}
