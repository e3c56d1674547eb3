package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/noclip/console"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_space", "set he", 6, "he", 4, 6},
		{"after_paren", "fib (+", 6, "+", 5, 6},
		{"after_delimiter", "get hp;se", 9, "se", 7, 9},
		{"before_close", "fib (fi)", 7, "fi", 5, 7},
		{"empty_at_boundary", "set ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"cursor_past_end", "foo", 10, "foo", 0, 3},
		// Hyphens, dots and operators are part of words.
		{"hyphenated", "log-pretty", 10, "log-pretty", 0, 10},
		{"operator", "- 3 1", 1, "-", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor, ';')
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCommandCandidates(t *testing.T) {
	c := console.New()
	_ = c.Bind("quit", func() {})

	got := commandCandidates(c)

	for _, want := range []string{"set", "get", "+", "clear", "edit", "exit", "quit"} {
		if !slices.Contains(got, want) {
			t.Errorf("commandCandidates() missing %q", want)
		}
	}

	if n := len(slices.Compact(slices.Clone(got))); n != len(got) {
		t.Errorf("commandCandidates() has duplicates: %v", got)
	}

	if !slices.IsSorted(got) {
		t.Errorf("commandCandidates() not sorted: %v", got)
	}
}

func TestArgCandidates(t *testing.T) {
	c := console.New()

	hp, name := 100, "gordon"
	_ = console.BindVar(c, "hp", &hp)
	_ = console.BindVar(c, "name", &name)

	tests := []struct {
		name string
		seg  segment
		want []string
	}{
		{"set_name", segment{name: "set", arg: 0}, []string{"hp", "name"}},
		{"set_value", segment{name: "set", arg: 1}, nil},
		{"get_name", segment{name: "get", arg: 0}, []string{"hp", "name"}},
		{"arithmetic", segment{name: "+", arg: 0}, nil},
		{"unknown", segment{name: "bogus", arg: 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := argCandidates(c, tt.seg); !slices.Equal(got, tt.want) {
				t.Errorf("argCandidates(%+v) = %v, want %v", tt.seg, got, tt.want)
			}
		})
	}
}

func TestFormatOutput(t *testing.T) {
	out := formatOutput("55\n" + console.DiagnosticPrefix + "unknown variable\n")

	want := resultStyle.Render("55") + "\n" +
		errorStyle.Render(console.DiagnosticPrefix+"unknown variable")

	if out != want {
		t.Errorf("formatOutput() = %q, want %q", out, want)
	}
}
