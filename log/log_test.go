package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevels_ListsAllNames(t *testing.T) {
	got := slices.Collect(Levels())
	want := []string{"trace", "debug", "info", "warn", "error"}

	if !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestLogger_ZeroValueDiscards(t *testing.T) {
	var l Logger

	// Must not panic.
	l.Trace("trace")
	l.Info("info", slog.String("k", "v"))
	l.With(slog.Int("n", 1)).Error("error")

	if l.Level() != DefaultLevel {
		t.Errorf("zero Logger level = %v, want %v", l.Level(), DefaultLevel)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	l.Trace("dispatch", slog.String("command", "get"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("failed to parse JSON output %q: %v", buf.String(), err)
	}

	if rec["msg"] != "dispatch" {
		t.Errorf("msg = %v, want dispatch", rec["msg"])
	}

	if rec["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", rec["level"])
	}

	if rec["command"] != "get" {
		t.Errorf("command = %v, want get", rec["command"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at debug", (Logger).Trace, LevelDebug, false},
		{"debug at debug", (Logger).Debug, LevelDebug, true},
		{"debug at info", (Logger).Debug, LevelInfo, false},
		{"warn at warn", (Logger).Warn, LevelWarn, true},
		{"error at warn", (Logger).Error, LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.logFunc(Make(&buf, WithLevel(tt.minLevel)), "message")

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_TimeLayoutNone(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("none")).Info("hello")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("expected no timestamp, got %q", buf.String())
	}
}

func TestLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	l.With(slog.String("console", "main")).
		Warn("diagnostic", slog.Group("error", slog.String("cause", "bad")))

	out := buf.String()

	for _, want := range []string{"WARN", "diagnostic", "console", "main", "error.cause", "bad"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output %q missing %q", out, want)
		}
	}

	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line, got %q", out)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	base.Debug("hidden")
	wrapped.Debug("shown")

	if first.Len() != 0 {
		t.Errorf("base logger wrote %q", first.String())
	}

	if !strings.Contains(second.String(), "shown") {
		t.Errorf("wrapped logger output %q missing message", second.String())
	}

	if wrapped.Level() != LevelDebug {
		t.Errorf("wrapped level = %v, want debug", wrapped.Level())
	}
}

func TestConfig_UpdatesDefault(t *testing.T) {
	original := Default()
	defer defaultLog.Store(&original)

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithFormat(FormatText))
	Debug("from package", slog.String("key", "value"))

	if !strings.Contains(buf.String(), "from package") ||
		!strings.Contains(buf.String(), "key=value") {
		t.Errorf("package-level output = %q", buf.String())
	}
}
