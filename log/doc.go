// Package log provides a leveled structured logger built on [log/slog].
//
// Loggers are configured with functional options when created and are
// immutable afterward, so a [Logger] value may be copied and shared between
// goroutines. The zero [Logger] discards every message, which lets library
// types such as the console accept an optional logger without nil checks.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("console ready", slog.Int("cvars", 3))
//
// # Levels
//
// In addition to the [log/slog] levels, [LevelTrace] sits below
// [LevelDebug] and is used for per-token tracing of the interpreter.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON] are supported. With [WithPretty],
// text output is colorized for terminals.
//
// # Package-Level Logger
//
// Functions such as [Info] and [Error] write through a package-level logger
// that writes to standard error. [Config] reconfigures it; the CLI does so
// while parsing flags so that early errors are logged with the requested
// settings.
package log
