package cmd

import "github.com/ardnew/noclip/console"

// Error is the structured error type shared with the console, so command
// failures and console failures log and match the same way.
type Error = console.Error

// NewError creates a new Error with a message.
func NewError(msg string) *Error { return console.NewError(msg) }

var (
	ErrYAMLMarshal = NewError("marshal YAML")
	ErrWriteConfig = NewError("write configuration file")
	ErrFileExists  = NewError("file exists (use --force to overwrite)")
	ErrNoConsole   = NewError("no console in context")
	ErrOpenSource  = NewError("open source file")
	ErrExecute     = NewError("execution stopped")
)
