package console

import (
	"bytes"
	"errors"
	"io"
	"net/netip"
	"slices"
	"strings"
	"testing"
	"time"
)

const diag = DiagnosticPrefix

func run(t *testing.T, c *Console, src string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	err := c.ExecuteString(src, &buf)

	return buf.String(), err
}

func TestSetGetRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		bind func(c *Console) error
		set  string
		want string
	}{
		{"int", func(c *Console) error { v := 0; return BindVar(c, "v", &v) }, "42", "42\n"},
		{"negative", func(c *Console) error { v := 0; return BindVar(c, "v", &v) }, "-7", "-7\n"},
		{"float", func(c *Console) error { v := 0.0; return BindVar(c, "v", &v) }, "2.5", "2.5\n"},
		{"bool", func(c *Console) error { v := false; return BindVar(c, "v", &v) }, "true", "true\n"},
		{"string", func(c *Console) error { v := ""; return BindVar(c, "v", &v) }, "hello", "hello\n"},
		{"uint8", func(c *Console) error { var v uint8; return BindVar(c, "v", &v) }, "255", "255\n"},
		{"duration", func(c *Console) error { var v time.Duration; return BindVar(c, "v", &v) }, "1m30s", "1m30s\n"},
		{"text", func(c *Console) error { var v netip.Addr; return BindVar(c, "v", &v) }, "10.0.0.1", "10.0.0.1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			if err := tt.bind(c); err != nil {
				t.Fatalf("bind: %v", err)
			}

			got, err := run(t, c, "set v "+tt.set+"; get v")
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetGarbageLeavesStorage(t *testing.T) {
	c := New()

	v := 5
	if err := BindVar(c, "v", &v); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, c, "set v garbage; get v")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := diag + `type mismatch: variable "v" is of type int` + "\n5\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if v != 5 {
		t.Errorf("v = %d, want 5", v)
	}
}

func TestUnknownCommandStops(t *testing.T) {
	c := New()

	v := 1
	_ = BindVar(c, "v", &v)

	got, err := run(t, c, "nosuchcommand; get v")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Execute() error = %v, want %v", err, ErrUnknownCommand)
	}

	want := diag + `unknown command: "nosuchcommand"` + "\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestUnknownVariableContinues(t *testing.T) {
	c := New()

	v := 1
	_ = BindVar(c, "v", &v)

	got, err := run(t, c, "get novar; set novar 3; get v")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := diag + `unknown variable: "novar"` + "\n" +
		diag + `unknown variable: "novar"` + "\n" +
		"1\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"add", "+ 1 2", "3\n"},
		{"sub", "- 1 2", "-1\n"},
		{"mul", "* 1.5 2", "3\n"},
		{"div", "/ 1 4", "0.25\n"},
		{"mod", "% 7 3", "1\n"},
		{"nested_add", "+ (+ 1 2) 3", "6\n"},
		{"nested_mod", "% (* 2 3) 4", "2\n"},
		{"nested_both", "+ (- 3 2) (* 4 5)", "21\n"},
		{"mod_zero", "% 1 0", diag + "command failed: division by zero\n"},
		{"mod_float", "% 6.5 2", diag + "incorrect argument types: usage: % <int> <int>\n"},
		{"missing", "+ 1", diag + "incorrect argument types: usage: + <float64> <float64>\n"},
		{"extra_ignored", "+ 1 2 3", "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, New(), tt.src)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("%q = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestNestedFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated", "+ (+ 1 2 3"},
		{"unknown_inner", "+ (nope 1) 2"},
		{"inner_garbage", "+ (+ x 1) 2"},
		{"double_nesting", "+ (+ (+ 1 2) 3) 4"},
		{"too_long", "+ (" + strings.Repeat(" ", 300) + "+ 1 2) 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, New(), tt.src)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if !strings.HasPrefix(got, diag+"incorrect argument types") {
				t.Errorf("%q = %q, want argument type diagnostic", tt.src, got)
			}
		})
	}
}

func TestNestedSetFromCommand(t *testing.T) {
	c := New()

	x := 0
	_ = BindVar(c, "x", &x)
	_ = c.Bind("fib", fib)

	got, err := run(t, c, "set x (fib 10)\nget x")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got != "55\n" || x != 55 {
		t.Errorf("output = %q, x = %d, want 55", got, x)
	}
}

func TestNestedRawCommandFailure(t *testing.T) {
	tests := []struct {
		name   string
		report func(c *Console) Func
	}{
		{
			name: "console_report",
			report: func(c *Console) Func {
				return func(_ *Input, out io.Writer) { c.Report(out, ErrTypeMismatch) }
			},
		},
		{
			name: "package_report",
			report: func(*Console) Func {
				return func(_ *Input, out io.Writer) { Report(out, ErrTypeMismatch) }
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()

			s := "keep"
			_ = BindVar(c, "s", &s)
			_ = c.BindFunc("bad", tt.report(c))

			got, err := run(t, c, "set s (bad); get s")
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if s != "keep" {
				t.Errorf("s = %q, want unchanged", s)
			}

			if !strings.HasPrefix(got, diag+"type mismatch: variable \"s\"") ||
				!strings.HasSuffix(got, "\nkeep\n") {
				t.Errorf("output = %q", got)
			}
		})
	}
}

func TestArgumentOrder(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantSeq    []int
		wantCalled bool
		wantOut    string
	}{
		{
			name:       "left_to_right",
			src:        "f (mark 1) (mark 2) (mark 3)",
			wantSeq:    []int{1, 2, 3},
			wantCalled: true,
		},
		{
			name:    "failure_keeps_earlier_effects",
			src:     "f (mark 1) x (mark 3)",
			wantSeq: []int{1},
			wantOut: diag + "incorrect argument types: usage: f <int> <int> <int>\n",
		},
		{
			name:    "nested_failure_keeps_earlier_effects",
			src:     "f (mark 1) (mark 2) (nope)",
			wantSeq: []int{1, 2},
			wantOut: diag + "incorrect argument types: usage: f <int> <int> <int>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()

			var seq []int

			called := false
			_ = c.Bind("mark", func(n int) int { seq = append(seq, n); return n })
			_ = c.Bind("f", func(a, b, c int) { called = true })

			got, err := run(t, c, tt.src)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if !slices.Equal(seq, tt.wantSeq) {
				t.Errorf("evaluation order = %v, want %v", seq, tt.wantSeq)
			}

			if called != tt.wantCalled {
				t.Errorf("called = %v, want %v", called, tt.wantCalled)
			}

			if got != tt.wantOut {
				t.Errorf("output = %q, want %q", got, tt.wantOut)
			}
		})
	}
}

func TestInvalidUTF8Preserved(t *testing.T) {
	tests := []struct {
		name string
		set  string
		want string
	}{
		{"invalid_bytes", "\xff\xfeab", "\uFFFD\uFFFDab"},
		{"replacement_char", "a\uFFFDb", "a\uFFFDb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()

			s := ""
			_ = BindVar(c, "s", &s)

			if _, err := run(t, c, "set s "+tt.set); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if s != tt.want {
				t.Errorf("s = %q, want %q", s, tt.want)
			}
		})
	}
}

func fib(n int) int {
	if n < 2 {
		return n
	}

	return fib(n-1) + fib(n-2)
}

func TestRebindLastWriterWins(t *testing.T) {
	c := New()

	_ = c.Bind("f", func() string { return "first" })
	_ = c.Bind("f", func() string { return "second" })

	a, b := 1, 2
	_ = BindVar(c, "v", &a)
	_ = BindVar(c, "v", &b)

	got, _ := run(t, c, "f; set v 9; get v")
	if got != "second\n9\n" {
		t.Errorf("output = %q", got)
	}

	if a != 1 || b != 9 {
		t.Errorf("a, b = %d, %d; want 1, 9", a, b)
	}
}

func TestUnbind(t *testing.T) {
	c := New()

	v := 1
	_ = BindVar(c, "v", &v)
	_ = c.Bind("f", func() {})

	c.Unbind("absent")
	c.UnbindVar("absent")
	c.Unbind("set")

	if !c.HasCommand("f") || !c.HasVar("v") || !c.HasCommand("set") {
		t.Fatal("unbind of absent or reserved name changed the tables")
	}

	c.Unbind("f")
	c.UnbindVar("v")

	got, err := run(t, c, "get v; f")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Execute() error = %v, want %v", err, ErrUnknownCommand)
	}

	want := diag + `unknown variable: "v"` + "\n" + diag + `unknown command: "f"` + "\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestBadArgumentsSkipCall(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing", "f"},
		{"missing_second", "f 1"},
		{"wrong_type", "f x 2"},
		{"wrong_second", "f 1 true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()

			called := false
			_ = c.Bind("f", func(a, b int) { called = true })

			got, err := run(t, c, tt.src)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if called {
				t.Error("callable invoked with bad arguments")
			}

			want := diag + "incorrect argument types: usage: f <int> <int>\n"
			if got != want {
				t.Errorf("output = %q, want %q", got, want)
			}
		})
	}
}

func TestDelimitersAndBlankLines(t *testing.T) {
	c := New(WithDelimiter('|'))

	got, err := run(t, c, "  | + 1 1 |\n\n  + 2 2  \n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got != "2\n4\n" {
		t.Errorf("output = %q", got)
	}
}

func TestMaxExprLen(t *testing.T) {
	c := New(WithMaxExprLen(5))

	got, _ := run(t, c, "+ (+ 1 2) 1; + (+ 10 20) 1")

	want := "4\n" + diag + "incorrect argument types: usage: + <float64> <float64>\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCvarsAndProcs(t *testing.T) {
	c := New()

	got, _ := run(t, c, "cvars; procs")

	want := "There are no bound console variables...\n" +
		"There are no bound console commands...\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	b, a := 0, 0
	_ = BindVar(c, "b", &b)
	_ = BindVar(c, "a", &a)
	_ = c.Bind("zed", func() {})
	_ = c.Bind("alpha", func() {})

	got, _ = run(t, c, "cvars; procs")

	want = "\n    a\n    b\n\n\n    alpha\n    zed\n\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHelp(t *testing.T) {
	got, _ := run(t, New(), "help")

	for _, s := range []string{"-- Console Help --", "set <cvar id> <value>", "procs"} {
		if !strings.Contains(got, s) {
			t.Errorf("help output missing %q", s)
		}
	}
}

func TestPanicRecovered(t *testing.T) {
	c := New()

	_ = c.Bind("boom", func() { panic("kaboom") })
	_ = c.Bind("ok", func() string { return "ok" })

	got, err := run(t, c, "boom; ok")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := diag + "command panicked: boom: kaboom\nok\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNilWriter(t *testing.T) {
	c := New()

	v := 0
	_ = BindVar(c, "v", &v)

	if err := c.ExecuteString("set v 3; get v", nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if v != 3 {
		t.Errorf("v = %d, want 3", v)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestReadError(t *testing.T) {
	err := New().Execute(failingReader{}, io.Discard)
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("Execute() error = %v, want %v", err, ErrReadInput)
	}
}

func TestIntrospection(t *testing.T) {
	c := New()

	n, s := 3, "x"
	_ = BindVar(c, "n", &n)
	_ = BindVar(c, "s", &s)

	if v, ok := c.Value("n"); !ok || v != 3 {
		t.Errorf("Value(n) = %v, %v", v, ok)
	}

	if _, ok := c.Value("missing"); ok {
		t.Error("Value(missing) reported ok")
	}

	vals := c.Values()
	if len(vals) != 2 || vals["s"] != "x" {
		t.Errorf("Values() = %v", vals)
	}

	if got := c.VarNames(); len(got) != 2 || got[0] != "n" || got[1] != "s" {
		t.Errorf("VarNames() = %v", got)
	}

	if f, ok := c.Format("n"); !ok || f != "3" {
		t.Errorf("Format(n) = %q, %v", f, ok)
	}

	for _, name := range Builtins() {
		if !IsReserved(name) || !c.HasCommand(name) {
			t.Errorf("built-in %q not bound", name)
		}
	}
}

func TestAssign(t *testing.T) {
	c := New()

	n := 1
	_ = BindVar(c, "n", &n)

	if err := c.Assign("n", "(+ 2 2)"); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if n != 4 {
		t.Errorf("n = %d, want 4", n)
	}

	if err := c.Assign("n", "nope"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Assign(nope) error = %v, want %v", err, ErrTypeMismatch)
	}

	if err := c.Assign("missing", "1"); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Assign(missing) error = %v, want %v", err, ErrUnknownVariable)
	}

	if n != 4 {
		t.Errorf("n = %d after failed assignment, want 4", n)
	}
}

func TestStore(t *testing.T) {
	type celsius float64

	c := New()

	var temp celsius
	_ = BindVar(c, "temp", &temp)

	if err := c.Store("temp", 21.5); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if temp != 21.5 {
		t.Errorf("temp = %v, want 21.5", temp)
	}

	if err := c.Store("temp", "hot"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Store(hot) error = %v, want %v", err, ErrTypeMismatch)
	}

	if err := c.Store("missing", 1); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Store(missing) error = %v, want %v", err, ErrUnknownVariable)
	}
}
