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

func TestLoadSession(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		content *string
		want    int
		wantErr bool
	}{
		{name: "missing_file", content: nil, want: 0},
		{name: "no_vars", content: ptr("log-level: info\n"), want: 0},
		{
			name: "vars",
			content: ptr(`delimiter: ";"
vars:
  - name: hp
    type: int
    value: "100"
  - name: who
    type: string
`),
			want: 2,
		},
		{name: "malformed", content: ptr("vars: [\n"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, tt.name+".yaml")

			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			s, err := LoadSession(context.Background(), path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadSession() error = %v, wantErr %v", err, tt.wantErr)
			}

			if len(s.Vars) != tt.want {
				t.Errorf("LoadSession() = %d vars, want %d", len(s.Vars), tt.want)
			}
		})
	}
}

func TestSessionBind(t *testing.T) {
	t.Parallel()

	c := console.New()

	s := Session{Vars: []VarDecl{
		{Name: "hp", Type: "int", Value: "100"},
		{Name: "who", Type: "string", Value: "gordon freeman"},
		{Name: "wait", Type: "duration", Value: "5s"},
		{Name: "empty", Type: "float64"},
		{Name: "bad_type", Type: "complex128", Value: "1"},
		{Name: "bad_value", Type: "int", Value: "lots"},
	}}

	err := s.Bind(context.Background(), c)
	if !errors.Is(err, ErrVarType) || !errors.Is(err, ErrBindVar) {
		t.Errorf("Session.Bind() error = %v, want %v and %v", err, ErrVarType, ErrBindVar)
	}

	for _, name := range []string{"bad_type", "bad_value"} {
		if c.HasVar(name) {
			t.Errorf("variable %q bound after failure", name)
		}
	}

	tests := []struct {
		src  string
		want string
	}{
		{"get hp", "100\n"},
		{"get who", "gordon freeman\n"},
		{"get wait", "5s\n"},
		{"get empty", "0\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := c.ExecuteString(tt.src, &buf); err != nil {
			t.Fatalf("Execute(%q) error = %v", tt.src, err)
		}

		if buf.String() != tt.want {
			t.Errorf("%q = %q, want %q", tt.src, buf.String(), tt.want)
		}
	}
}

func TestVarTypes(t *testing.T) {
	t.Parallel()

	types := VarTypes()
	if len(types) == 0 || types[0] != "bool" {
		t.Errorf("VarTypes() = %v", types)
	}

	for _, v := range SampleVars() {
		if _, ok := varTypes[v.Type]; !ok {
			t.Errorf("sample variable %q has unsupported type %q", v.Name, v.Type)
		}
	}
}

func ptr[T any](v T) *T { return &v }
