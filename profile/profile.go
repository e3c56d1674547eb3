package profile

import "slices"

// Stopper stops a running profiler. Stop is safe to call more than once.
type Stopper interface{ Stop() }

type settings struct {
	mode  string
	dir   string
	quiet bool
}

// Option sets a profiler setting.
type Option func(settings) settings

// WithMode selects one of [Modes].
func WithMode(mode string) Option {
	return func(s settings) settings {
		s.mode = mode

		return s
	}
}

// WithDir sets the output directory of profile data.
func WithDir(dir string) Option {
	return func(s settings) settings {
		s.dir = dir

		return s
	}
}

// WithQuiet suppresses the profiler's own log messages.
func WithQuiet(quiet bool) Option {
	return func(s settings) settings {
		s.quiet = quiet

		return s
	}
}

// Start starts the profiler selected by opts.
//
// If no mode is set, the mode is unsupported or the binary was built
// without the pprof tag, Start returns a no-op [Stopper].
func Start(opts ...Option) Stopper {
	var s settings

	for _, opt := range opts {
		if opt != nil {
			s = opt(s)
		}
	}

	if s.mode == "" || !slices.Contains(Modes(), s.mode) {
		return ignore{}
	}

	return start(s)
}

type ignore struct{}

func (ignore) Stop() {}
