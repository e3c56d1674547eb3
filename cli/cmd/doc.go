// Package cmd implements the noclip subcommands: exec, repl and init.
//
// Commands receive everything they need through their [context.Context]:
// the parsed [kong.Context] ([WithContext]), the session console
// ([WithConsole]) and the output sink ([WithOutput]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
