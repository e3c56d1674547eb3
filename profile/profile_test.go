package profile

import (
	"slices"
	"testing"
)

func TestStart_NoMode(t *testing.T) {
	stop := Start(WithDir(t.TempDir()), WithQuiet(true))
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() without mode = %T, want no-op", stop)
	}

	stop.Stop()
	stop.Stop()
}

func TestStart_UnknownMode(t *testing.T) {
	stop := Start(WithMode("bogus"), WithDir(t.TempDir()))
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start(bogus) = %T, want no-op", stop)
	}

	stop.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v without pprof tag", modes)
		}

		return
	}

	if !slices.IsSorted(modes) || !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v", modes)
	}
}
