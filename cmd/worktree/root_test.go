package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/worktree/internal/config"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStderr string
	}{
		{name: "success", err: nil, wantCode: 0},
		{name: "child exit status", err: &exitError{code: 42}, wantCode: 42},
		{name: "wrapped child exit status", err: fmt.Errorf("run: %w", &exitError{code: 3}), wantCode: 3},
		{name: "manager error", err: errors.New("boom"), wantCode: 1, wantStderr: "worktree: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if got := exitCode(tt.err, &buf); got != tt.wantCode {
				t.Errorf("exitCode() = %d, want %d", got, tt.wantCode)
			}
			if buf.String() != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", buf.String(), tt.wantStderr)
			}
		})
	}
}

func TestChildResult(t *testing.T) {
	t.Parallel()

	if err := childResult(0); err != nil {
		t.Errorf("childResult(0) = %v, want nil", err)
	}

	var ee *exitError
	if err := childResult(7); !errors.As(err, &ee) || ee.code != 7 {
		t.Errorf("childResult(7) = %v, want exit status 7", err)
	}
}

func TestSplitNameArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		argv     []string
		wantName string
		wantRest []string
	}{
		{name: "nothing", argv: nil, wantName: "", wantRest: nil},
		{name: "name only", argv: []string{"feature"}, wantName: "feature", wantRest: []string{}},
		{name: "name and command", argv: []string{"feature", "make", "test"}, wantName: "feature", wantRest: []string{"make", "test"}},
		{name: "command flags stay with the command", argv: []string{"feature", "ls", "-la"}, wantName: "feature", wantRest: []string{"ls", "-la"}},
		{name: "dash before name", argv: []string{"--", "go", "test"}, wantName: "", wantRest: []string{"go", "test"}},
		{name: "dash after name", argv: []string{"feature", "--", "--help"}, wantName: "feature", wantRest: []string{"--help"}},
		{name: "copy flag then name", argv: []string{"--copy", "feature", "pwd"}, wantName: "feature", wantRest: []string{"pwd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{Use: "create"}
			cmd.Flags().SetInterspersed(false)
			cmd.Flags().Bool("copy", false, "")
			if err := cmd.Flags().Parse(tt.argv); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			name, rest := splitNameArgs(cmd, cmd.Flags().Args())
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(rest) != len(tt.wantRest) || !slices.Equal(rest, tt.wantRest) {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestCommandFromArgs(t *testing.T) {
	t.Parallel()

	if c := commandFromArgs(nil); !c.IsShell() {
		t.Errorf("commandFromArgs(nil) = %+v, want the shell", c)
	}

	c := commandFromArgs([]string{"make", "test"})
	if c.Program != "make" || !slices.Equal(c.Args, []string{"test"}) {
		t.Errorf("commandFromArgs() = %+v", c)
	}
}

func TestToolNames(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Commands["aider"] = config.CommandConfig{Args: []string{"--yes"}}
	cfg.Commands["list"] = config.CommandConfig{}
	cfg.Commands["claude"] = config.CommandConfig{ReplaceDefaults: true}

	root := &cobra.Command{Use: "worktree"}
	root.AddCommand(&cobra.Command{Use: "list", Aliases: []string{"ls"}})

	got := toolNames(root, &cfg)
	want := append(config.KnownTools(), "aider")
	if !slices.Equal(got, want) {
		t.Errorf("toolNames() = %v, want %v", got, want)
	}

	if len(cfg.Warnings) != 1 || !strings.Contains(cfg.Warnings[0], "commands.list") {
		t.Errorf("Warnings = %v, want one for [commands.list]", cfg.Warnings)
	}
}

func TestRootCommandTree(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Commands["aider"] = config.CommandConfig{}
	root := newRootCmd(&cfg)

	for _, path := range [][]string{
		{"create"}, {"switch"}, {"list"}, {"ls"}, {"clear"}, {"init"},
		{"claude", "create"}, {"codex", "switch"}, {"aider", "create"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == root {
			t.Errorf("command %q not found: %v", strings.Join(path, " "), err)
		}
	}
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got, want := displayPath(filepath.Join(home, ".worktree", "config.toml")), filepath.Join("~", ".worktree", "config.toml"); got != want {
		t.Errorf("displayPath() = %q, want %q", got, want)
	}
	if home == "/" {
		return
	}
	if got := displayPath("/elsewhere/config.toml"); got != "/elsewhere/config.toml" {
		t.Errorf("displayPath() = %q, want unchanged", got)
	}
}
