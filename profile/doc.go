// Package profile provides optional runtime profiling for noclip.
//
// Profiling is built on [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof -o noclip .
//
// Without the tag, [Modes] is empty and [Start] always returns a no-op
// [Stopper].
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// # Usage
//
//	stop := profile.Start(
//		profile.WithMode("cpu"),
//		profile.WithDir("/tmp/profiles"),
//	)
//	defer stop.Stop()
//
// Profiles are written to the directory with names matching the mode
// (e.g., cpu.pprof) and analyzed with "go tool pprof":
//
//	noclip --pprof-mode=cpu exec script.ncl
//	go tool pprof -http=: ~/.cache/noclip/pprof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
