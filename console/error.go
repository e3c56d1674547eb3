package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DiagnosticPrefix begins every diagnostic line written to the output sink.
const DiagnosticPrefix = "CONSOLE ERROR: "

// Predefined errors (sentinel values).
//
// Wrapped or annotated copies still match their sentinel with [errors.Is].
var (
	ErrUnknownCommand  = NewError("unknown command")
	ErrUnknownVariable = NewError("unknown variable")
	ErrTypeMismatch    = NewError("type mismatch")
	ErrArgumentTypes   = NewError("incorrect argument types")
	ErrCommandFailed   = NewError("command failed")
	ErrCommandPanic    = NewError("command panicked")
	ErrDivisionByZero  = NewError("division by zero")
	ErrInvalidName     = NewError("invalid binding name")
	ErrReservedName    = NewError("reserved command name")
	ErrNotPointer      = NewError("variable binding requires a non-nil pointer")
	ErrNotFunc         = NewError("command binding requires a function")
	ErrNoMethod        = NewError("no such method")
	ErrNoCodec         = NewError("no codec for type")
	ErrSignature       = NewError("unsupported signature")
	ErrMissingArgument = NewError("missing argument")
	ErrUnterminated    = NewError("unterminated expression")
	ErrExprTooLong     = NewError("expression too long")
	ErrNestedCommand   = NewError("nested command failed")
	ErrReadInput       = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError converts err into an *Error, returning err itself if it already
// is one.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error implements the error interface as "<msg>: <cause>", omitting
// whichever part is empty.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// Wrapf returns a copy of e wrapping a formatted error.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Report writes err to w as a single diagnostic line. Commands should prefer
// [Console.Report], which also logs the diagnostic.
func Report(w io.Writer, err error) {
	if w == nil || err == nil {
		return
	}

	_, _ = io.WriteString(w, DiagnosticPrefix+err.Error()+"\n")
}
