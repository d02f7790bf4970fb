package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom(missing) error = %v", err)
	}
	if got := cfg.Tool("claude").Args(); !slices.Equal(got, []string{"--dangerously-skip-permissions"}) {
		t.Errorf("claude args = %v", got)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty for defaults", cfg.Path)
	}
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		tool    string
		want    []string
	}{
		{
			name:    "empty file",
			content: "",
			tool:    "codex",
			want:    []string{"--dangerously-bypass-approvals-and-sandbox"},
		},
		{
			name:    "missing section",
			content: "[commands.claude]\nargs = [\"--x\"]\n",
			tool:    "codex",
			want:    []string{"--dangerously-bypass-approvals-and-sandbox"},
		},
		{
			name:    "appends extras",
			content: "[commands.claude]\nargs = [\"--model\", \"opus\"]\n",
			tool:    "claude",
			want:    []string{"--dangerously-skip-permissions", "--model", "opus"},
		},
		{
			name:    "replace defaults",
			content: "[commands.claude]\nargs = [\"--model\", \"opus\"]\nreplace_defaults = true\n",
			tool:    "claude",
			want:    []string{"--model", "opus"},
		},
		{
			name:    "replace defaults without args",
			content: "[commands.codex]\nreplace_defaults = true\n",
			tool:    "codex",
			want:    []string{},
		},
		{
			name:    "custom tool has no defaults",
			content: "[commands.aider]\nargs = [\"--yes\"]\n",
			tool:    "aider",
			want:    []string{"--yes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := LoadFrom(writeConfig(t, tt.content))
			if err != nil {
				t.Fatalf("LoadFrom error = %v", err)
			}
			got := cfg.Tool(tt.tool).Args()
			if len(got) != len(tt.want) || !slices.Equal(got, tt.want) {
				t.Errorf("Tool(%q).Args() = %q, want %q", tt.tool, got, tt.want)
			}
		})
	}
}

func TestLoadFrom_Malformed(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(writeConfig(t, "[commands.claude\nargs = ["))
	if err == nil {
		t.Fatal("LoadFrom(malformed) should return an error")
	}
	// Defaults remain usable.
	if got := cfg.Tool("claude").Args(); !slices.Equal(got, []string{"--dangerously-skip-permissions"}) {
		t.Errorf("claude args after parse error = %v", got)
	}
}

func TestLoadFrom_UnknownKeys(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(writeConfig(t, "[commands.claude]\nargz = [\"--x\"]\n"))
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if len(cfg.Warnings) != 1 || !strings.Contains(cfg.Warnings[0], "argz") {
		t.Errorf("Warnings = %v, want one about argz", cfg.Warnings)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	// Cannot use t.Parallel(): t.Setenv mutates process env
	path := writeConfig(t, "[commands.codex]\nargs = [\"--full-auto\"]\n")
	t.Setenv(EnvConfigPath, path)

	got, err := Path()
	if err != nil || got != path {
		t.Fatalf("Path() = %q, %v; want %q", got, err, path)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Path != path {
		t.Errorf("cfg.Path = %q, want %q", cfg.Path, path)
	}
	want := []string{"--dangerously-bypass-approvals-and-sandbox", "--full-auto"}
	if got := cfg.Tool("codex").Args(); !slices.Equal(got, want) {
		t.Errorf("codex args = %v, want %v", got, want)
	}
}

func TestPath_Default(t *testing.T) {
	// Cannot use t.Parallel(): t.Setenv mutates process env
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")

	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".worktree", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestInit(t *testing.T) {
	// Cannot use t.Parallel(): t.Setenv mutates process env
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv(EnvConfigPath, path)

	got, created, err := Init(false)
	if err != nil {
		t.Fatalf("Init error = %v", err)
	}
	if got != path || !created {
		t.Errorf("Init = %q, %v; want %q, true", got, created, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, tool := range KnownTools() {
		if !strings.Contains(string(data), "# [commands."+tool+"]") {
			t.Errorf("starter config lacks commented section for %s", tool)
		}
	}

	// Existing files are left alone.
	if err := os.WriteFile(path, []byte("# mine\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, created, err := Init(false); err != nil || created {
		t.Errorf("Init on existing file = %v, %v; want false, nil", created, err)
	}
	if data, _ := os.ReadFile(path); string(data) != "# mine\n" {
		t.Errorf("Init overwrote existing file: %q", data)
	}

	if _, created, err := Init(true); err != nil || !created {
		t.Errorf("Init(force) = %v, %v; want true, nil", created, err)
	}
	if data, _ := os.ReadFile(path); string(data) == "# mine\n" {
		t.Error("Init(force) did not overwrite")
	}
}

func TestStarterConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	content := starterConfig()
	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		t.Errorf("starterConfig() produces invalid TOML: %v\nContent:\n%s", err, content)
	}
	if len(cfg.Commands) != 0 {
		t.Errorf("starter config should only contain commented sections, got %v", cfg.Commands)
	}
}

func TestCustomTools(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(writeConfig(t, "[commands.zed]\n[commands.claude]\n[commands.aider]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.CustomTools(); !slices.Equal(got, []string{"aider", "zed"}) {
		t.Errorf("CustomTools() = %v, want [aider zed]", got)
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Commands: map[string]CommandConfig{"claude": {ReplaceDefaults: true}}}
		ctx := WithConfig(context.Background(), cfg)
		if got := FromContext(ctx); got != cfg {
			t.Error("FromContext did not return the stored config")
		}
	})

	t.Run("defaults when not set", func(t *testing.T) {
		t.Parallel()
		got := FromContext(context.Background())
		if got == nil || len(got.Commands) != 0 {
			t.Errorf("FromContext on empty context = %v, want defaults", got)
		}
	})
}

func TestWithWorkDir_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		ctx := WithWorkDir(context.Background(), "/custom/path")
		got := WorkDirFromContext(ctx)
		if got != "/custom/path" {
			t.Errorf("WorkDirFromContext = %q, want %q", got, "/custom/path")
		}
	})

	t.Run("fallback to getwd when not set", func(t *testing.T) {
		t.Parallel()
		got := WorkDirFromContext(context.Background())
		wd, _ := os.Getwd()
		if got != wd {
			t.Errorf("WorkDirFromContext = %q, want %q (os.Getwd)", got, wd)
		}
	})
}
