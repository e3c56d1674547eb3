package console

import (
	"io"
	"log/slog"
	"strings"
)

// Execute runs every command read from r, writing output and diagnostics to
// w. Commands are separated by the console's delimiter or a newline; blank
// commands are skipped.
//
// Execute stops at the first unknown command, after writing its diagnostic,
// and returns an error matching [ErrUnknownCommand]. Any other diagnostic is
// written to w and execution continues. Execute returns nil once r is
// exhausted, or an error matching [ErrReadInput] if reading r fails.
//
// A nil w discards all output.
func (c *Console) Execute(r io.Reader, w io.Writer) error {
	if w == nil {
		w = io.Discard
	}

	return c.execute(NewInput(r), w)
}

// ExecuteString runs the commands in s. See [Console.Execute].
func (c *Console) ExecuteString(s string, w io.Writer) error {
	return c.Execute(strings.NewReader(s), w)
}

func (c *Console) execute(in *Input, w io.Writer) error {
	for {
		line, more := in.readLine(c.delim)

		if strings.TrimSpace(line) != "" {
			if err := c.dispatch(line, w); err != nil {
				return err
			}
		}

		if !more {
			if in.rerr != nil {
				return ErrReadInput.Wrap(in.rerr)
			}

			return nil
		}
	}
}

// dispatch runs a single command line.
func (c *Console) dispatch(line string, w io.Writer) error {
	in := NewInputString(line)

	id, _ := in.Token()

	cmd, ok := c.commands[id]
	if !ok {
		err := ErrUnknownCommand.Wrapf("%q", id)
		c.diagnose(w, err)

		return err
	}

	c.logger.Trace("dispatch", slog.String("command", id), slog.String("line", line))

	c.invoke(id, cmd.fn, in, w)

	return nil
}

func (c *Console) invoke(id string, fn Func, in *Input, w io.Writer) {
	defer func() {
		if r := recover(); r != nil {
			c.diagnose(w, ErrCommandPanic.Wrapf("%s: %v", id, r))
		}
	}()

	fn(in, w)
}
