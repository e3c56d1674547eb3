package repl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"unicode"

	"github.com/ardnew/noclip/console"
	"github.com/ardnew/noclip/log"
)

const defaultEditor = "vi"

// editScriptCommand implements [tea.ExecCommand] for editing a console
// script in the user's editor. The script starts as one "set" command per
// variable whose value survives tokenization, and the edited result is kept
// in script for the model to execute.
type editScriptCommand struct {
	console *console.Console
	ctxFunc func() context.Context
	script  string
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editScriptCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editScriptCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editScriptCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run writes the session script to a temporary file, opens the editor and
// reads the result back.
func (c *editScriptCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), "noclip-repl-*.ncl")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	_, err = io.WriteString(f, sessionScript(c.console))
	f.Close()

	if err != nil {
		return err
	}

	if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
		return err
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return err
	}

	c.script = string(data)

	c.logger.TraceContext(
		ctx,
		"editor script",
		slog.Int("content_length", len(data)),
	)

	return nil
}

// sessionScript returns a "set" command for every variable whose formatted
// value is a single non-empty token.
func sessionScript(c *console.Console) string {
	var b strings.Builder

	for _, name := range c.VarNames() {
		value, ok := c.Format(name)
		if !ok || value == "" || strings.ContainsFunc(value, unicode.IsSpace) {
			continue
		}

		b.WriteString("set " + name + " " + value + "\n")
	}

	return b.String()
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
