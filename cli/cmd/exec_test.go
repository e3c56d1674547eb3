package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/noclip/console"
)

func execContext(t *testing.T) (context.Context, *console.Console, *bytes.Buffer) {
	t.Helper()

	c := console.New()

	var out bytes.Buffer

	ctx := WithConsole(context.Background(), c)
	ctx = WithOutput(ctx, &out)

	return ctx, c, &out
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// TestExecRun tests command lines and script files executed in order.
func TestExecRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeScript(t, dir, "first.ncl", "set hp 50\nget hp\n")
	second := writeScript(t, dir, "second.ncl", "set hp (+ 50 1); get hp\n")

	tests := []struct {
		name    string
		exec    Exec
		want    string
		wantErr error
	}{
		{
			name: "eval_lines",
			exec: Exec{Eval: []string{"set hp 7", "get hp"}},
			want: "7\n",
		},
		{
			name: "files_in_order",
			exec: Exec{Files: []string{first, second}},
			want: "50\n51\n",
		},
		{
			name: "eval_then_files",
			exec: Exec{Eval: []string{"get hp"}, Files: []string{first}},
			want: "0\n50\n",
		},
		{
			name: "duplicate_file_once",
			exec: Exec{Files: []string{first, first}},
			want: "50\n",
		},
		{
			name:    "unknown_command_stops",
			exec:    Exec{Eval: []string{"bogus; get hp"}},
			want:    console.DiagnosticPrefix + "unknown command: \"bogus\"\n",
			wantErr: console.ErrUnknownCommand,
		},
		{
			name: "keep_going",
			exec: Exec{Eval: []string{"bogus; set hp 3; get hp"}, KeepGoing: true},
			want: console.DiagnosticPrefix + "unknown command: \"bogus\"\n3\n",
		},
		{
			name:    "missing_file",
			exec:    Exec{Files: []string{filepath.Join(dir, "missing.ncl")}},
			wantErr: ErrOpenSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, c, out := execContext(t)

			hp := 0
			if err := console.BindVar(c, "hp", &hp); err != nil {
				t.Fatal(err)
			}

			err := tt.exec.Run(ctx)

			switch {
			case tt.wantErr == nil && err != nil:
				t.Fatalf("Exec.Run() error = %v", err)

			case tt.wantErr != nil && !errors.Is(err, tt.wantErr):
				t.Fatalf("Exec.Run() error = %v, want %v", err, tt.wantErr)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestExecNoConsole tests that exec requires a console in its context.
func TestExecNoConsole(t *testing.T) {
	t.Parallel()

	err := (&Exec{Eval: []string{"help"}}).Run(context.Background())
	if !errors.Is(err, ErrNoConsole) {
		t.Errorf("Exec.Run() error = %v, want %v", err, ErrNoConsole)
	}
}

// TestOpenSources tests deduplication and stdin placement.
func TestOpenSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeScript(t, dir, "a.ncl", "")
	b := writeScript(t, dir, "b.ncl", "")

	link := filepath.Join(dir, "link.ncl")
	if err := os.Symlink(a, link); err != nil {
		t.Fatal(err)
	}

	srcs, err := openSources([]string{stdinSource, a, link, b, stdinSource})
	if err != nil {
		t.Fatalf("openSources() error = %v", err)
	}

	defer closeSources(srcs)

	want := []string{a, b, stdinSource}
	if len(srcs) != len(want) {
		t.Fatalf("openSources() = %d sources, want %d", len(srcs), len(want))
	}

	for i, src := range srcs {
		if src.name != want[i] {
			t.Errorf("source[%d] = %q, want %q", i, src.name, want[i])
		}
	}
}
