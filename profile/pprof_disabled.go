//go:build !pprof

package profile

// Enabled reports whether profiling support is compiled in.
const Enabled = false

// Modes returns nothing when built without the pprof tag.
func Modes() []string { return nil }

func start(settings) Stopper { return ignore{} }
