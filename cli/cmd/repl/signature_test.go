package repl

import (
	"slices"
	"testing"
)

func TestCommandAt(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		want   segment
	}{
		{"empty", "", 0, segment{command: true}},
		{"typing_command", "se", 2, segment{command: true}},
		{"first_arg", "set ", 4, segment{name: "set", arg: 0}},
		{"typing_first_arg", "set h", 5, segment{name: "set", arg: 0}},
		{"second_arg", "set hp ", 7, segment{name: "set", arg: 1}},
		{"after_delimiter", "get hp; set ", 12, segment{name: "set", arg: 0}},
		{"command_after_delimiter", "get hp; s", 9, segment{command: true}},
		{"nested_open", "fib (+ 1 ", 9, segment{name: "+", arg: 1}},
		{"nested_command", "fib (", 5, segment{command: true}},
		{"after_nested", "+ (+ 1 2) ", 10, segment{name: "+", arg: 1}},
		{"cursor_inside", "set hp 5", 5, segment{name: "set", arg: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commandAt(tt.input, tt.cursor, ';'); got != tt.want {
				t.Errorf("commandAt(%q, %d) = %+v, want %+v",
					tt.input, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		input       string
		wantArgs    []string
		wantPartial bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"fib 10", []string{"fib", "10"}, true},
		{"fib 10 ", []string{"fib", "10"}, false},
		{"+ (+ 1 2) 3", []string{"+", "(+ 1 2)", "3"}, true},
		{"fib (+ 1", []string{"fib", "(+ 1"}, true},
	}

	for _, tt := range tests {
		args, partial := splitArgs(tt.input)
		if !slices.Equal(args, tt.wantArgs) || partial != tt.wantPartial {
			t.Errorf("splitArgs(%q) = (%q, %v), want (%q, %v)",
				tt.input, args, partial, tt.wantArgs, tt.wantPartial)
		}
	}
}

func TestUsageParams(t *testing.T) {
	tests := []struct {
		usage string
		want  []string
	}{
		{"help", []string{}},
		{"set <cvar id> <value>", []string{"<cvar id>", "<value>"}},
		{"fib <int>", []string{"<int>"}},
		{"pathprefix <cvar id> <item>...", []string{"<cvar id>", "<item>..."}},
		{"", nil},
	}

	for _, tt := range tests {
		got := usageParams(tt.usage)
		if !slices.Equal(got, tt.want) {
			t.Errorf("usageParams(%q) = %q, want %q", tt.usage, got, tt.want)
		}
	}
}

func TestParamAt(t *testing.T) {
	params := []string{"<cvar id>", "<item>..."}

	tests := []struct {
		arg  int
		want string
	}{
		{-1, ""},
		{0, "<cvar id>"},
		{1, "<item>..."},
		{5, "<item>..."},
	}

	for _, tt := range tests {
		if got := paramAt(params, tt.arg); got != tt.want {
			t.Errorf("paramAt(%d) = %q, want %q", tt.arg, got, tt.want)
		}
	}

	if got := paramAt([]string{"<int>"}, 1); got != "" {
		t.Errorf("paramAt past fixed params = %q, want empty", got)
	}
}

func TestRenderSignatureHint(t *testing.T) {
	got := renderSignatureHint("set <cvar id> <value>", 1)

	want := signatureNameStyle.Render("set") +
		signatureStyle.Render(" ") + signatureStyle.Render("<cvar id>") +
		signatureStyle.Render(" ") + currentParamStyle.Render("<value>")

	if got != want {
		t.Errorf("renderSignatureHint() = %q, want %q", got, want)
	}

	if got := renderSignatureHint("", 0); got != "" {
		t.Errorf("renderSignatureHint(\"\") = %q, want empty", got)
	}
}
