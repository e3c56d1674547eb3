package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr bool
	}{
		{
			name:    "create_new_config",
			force:   false,
			setup:   nil, // no pre-existing file
			wantErr: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: false,
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true, // should fail because file exists
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				Delimiter string `default:";"`
				Verbose   bool
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			err = (&Init{Force: tt.force}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			// The generated file must load as both a session and a flag map.
			session, err := LoadSession(ctx, confPath)
			if err != nil {
				t.Fatalf("LoadSession() error = %v", err)
			}

			if len(session.Vars) != len(SampleVars()) {
				t.Errorf("session vars = %d, want %d", len(session.Vars), len(SampleVars()))
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var flags map[string]any
			if err := yaml.Unmarshal(content, &flags); err != nil {
				t.Fatalf("generated config is not valid YAML: %v", err)
			}

			if flags["delimiter"] != ";" {
				t.Errorf("delimiter = %v, want %q", flags["delimiter"], ";")
			}

			if flags["verbose"] != false {
				t.Errorf("verbose = %v, want false", flags["verbose"])
			}

			if _, ok := flags["help"]; ok {
				t.Error("help flag written to configuration")
			}
		})
	}
}

// TestInitFlagValue tests the flagValue conversion of parsed flags.
func TestInitFlagValue(t *testing.T) {
	t.Parallel()

	var cli struct {
		Count   int     `default:"5"`
		Name    string  `default:""`
		Ratio   float64 `default:"0.5"`
		Enabled bool    `default:"true"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"count":   5,
		"name":    nil,
		"ratio":   0.5,
		"enabled": true,
	}

	for _, flag := range kctx.Model.Flags {
		w, ok := want[flag.Name]
		if !ok {
			continue
		}

		if got := flagValue(kctx, flag); got != w {
			t.Errorf("flagValue(%s) = %#v, want %#v", flag.Name, got, w)
		}
	}
}
