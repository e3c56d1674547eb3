// Package cli contains the command line interface for noclip.
//
// # Usage
//
//	noclip [flags] [init | exec | repl]
//
// With no command, noclip starts the interactive console when stdin is a
// terminal and otherwise executes the commands read from stdin:
//
//	echo 'set health 50; get health' | noclip
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (e.g. ~/.config/noclip/config.yaml). The same file declares the
// session variables bound to the console at startup:
//
//	log-level: info
//	delimiter: ";"
//	max-expr-len: 256
//	vars:
//	  - name: health
//	    type: int
//	    value: "100"
//
// Run "noclip init" to write a file holding the current flag values and a
// sample variable list. Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Console Options
//
//   - --delimiter: Command delimiter character (default ";")
//   - --max-expr-len: Maximum length of a nested expression (default 256)
//   - --no-stock: Do not bind echo, fib, expr and pathprefix
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o noclip .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/noclip/pprof)
package cli
