package console

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input is the character source handed to every command.
//
// It carries a sticky failure flag: the first failed read or parse records
// an error, and every later read on the same Input yields nothing until the
// flag is cleared with [Input.Clear]. This lets a command evaluate all of its
// arguments and check for failure once at the end.
type Input struct {
	r    io.RuneScanner
	err  error // failure flag
	rerr error // non-EOF read error from the underlying source
}

// NewInput returns an Input reading from r.
func NewInput(r io.Reader) *Input {
	if rs, ok := r.(io.RuneScanner); ok {
		return &Input{r: rs}
	}

	return &Input{r: bufio.NewReader(r)}
}

// NewInputString returns an Input reading from s.
func NewInputString(s string) *Input {
	return &Input{r: strings.NewReader(s)}
}

// Failed reports whether the failure flag is set.
func (in *Input) Failed() bool { return in.err != nil }

// Err returns the error that set the failure flag, or nil.
func (in *Input) Err() error { return in.err }

// Fail sets the failure flag. Only the first failure is kept.
func (in *Input) Fail(err error) {
	if in.err == nil && err != nil {
		in.err = err
	}
}

// Clear resets the failure flag.
func (in *Input) Clear() { in.err = nil }

// next reads one rune, reporting false at end of input.
func (in *Input) next() (rune, bool) {
	r, _, err := in.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) && in.rerr == nil {
			in.rerr = err
		}

		return 0, false
	}

	return r, true
}

// Peek returns the next rune without consuming it.
func (in *Input) Peek() (rune, bool) {
	r, ok := in.next()
	if ok {
		_ = in.r.UnreadRune()
	}

	return r, ok
}

// SkipSpace consumes leading white space.
func (in *Input) SkipSpace() {
	for {
		r, ok := in.Peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}

		in.next()
	}
}

// Token reads the next whitespace-delimited token.
// If the input has failed or no token remains, Token sets the failure flag
// and reports false.
func (in *Input) Token() (string, bool) {
	if in.Failed() {
		return "", false
	}

	in.SkipSpace()

	var sb strings.Builder

	for {
		r, ok := in.next()
		if !ok {
			break
		}

		if unicode.IsSpace(r) {
			_ = in.r.UnreadRune()

			break
		}

		sb.WriteRune(r)
	}

	if sb.Len() == 0 {
		in.Fail(ErrMissingArgument)

		return "", false
	}

	return sb.String(), true
}

// ReadUntil consumes input through the next delim and returns the text
// before it. Text longer than limit runes is consumed but rejected with
// [ErrExprTooLong]; reaching the end of input first yields [ErrUnterminated].
// A limit of zero or less means no limit.
func (in *Input) ReadUntil(delim rune, limit int) (string, error) {
	var sb strings.Builder

	for {
		r, ok := in.next()
		if !ok {
			return sb.String(), ErrUnterminated.Wrapf("expected %q", delim)
		}

		if r == delim {
			break
		}

		sb.WriteRune(r)
	}

	if n := utf8.RuneCountInString(sb.String()); limit > 0 && n > limit {
		return "", ErrExprTooLong.Wrapf("%d runes exceeds limit of %d", n, limit)
	}

	return sb.String(), nil
}

// Rest consumes and returns everything remaining, without surrounding space.
func (in *Input) Rest() string {
	var sb strings.Builder

	for {
		r, ok := in.next()
		if !ok {
			return strings.TrimSpace(sb.String())
		}

		sb.WriteRune(r)
	}
}

// readLine reads one logical command line, stopping at delim, a newline or
// the end of input. more is false once the input is exhausted.
func (in *Input) readLine(delim rune) (line string, more bool) {
	var sb strings.Builder

	for {
		r, ok := in.next()
		if !ok {
			return sb.String(), false
		}

		if r == delim || r == '\n' {
			return sb.String(), true
		}

		sb.WriteRune(r)
	}
}
