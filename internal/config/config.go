package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "WORKTREE_CONFIG"

// CommandConfig is one [commands.NAME] section.
type CommandConfig struct {
	Args            []string `toml:"args"`
	ReplaceDefaults bool     `toml:"replace_defaults"`
}

// Config holds the worktree configuration
type Config struct {
	Commands map[string]CommandConfig `toml:"commands"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
	// Warnings lists keys that were present but not understood.
	Warnings []string `toml:"-"`
}

// Default returns the default configuration
func Default() Config {
	return Config{Commands: map[string]CommandConfig{}}
}

// Tool returns the effective configuration for the named tool.
func (c Config) Tool(name string) ToolConfig {
	cmd := c.Commands[name]
	return ToolConfig{
		Name:            name,
		DefaultArgs:     BuiltinArgs(name),
		ExtraArgs:       slices.Clone(cmd.Args),
		ReplaceDefaults: cmd.ReplaceDefaults,
	}
}

// CustomTools returns the sorted names of configured tools that are not
// built in.
func (c Config) CustomTools() []string {
	var names []string
	for _, name := range slices.Sorted(maps.Keys(c.Commands)) {
		if !IsBuiltinTool(name) {
			names = append(names, name)
		}
	}
	return names
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".worktree", "config.toml"), nil
}

// Load reads the config from Path.
// Returns Default() if file doesn't exist (no error)
// Returns Default() and an error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from path with the same rules as Load.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Commands == nil {
		cfg.Commands = map[string]CommandConfig{}
	}
	cfg.Path = path

	for _, key := range md.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown config key %q", key.String()))
	}

	return cfg, nil
}

// Init writes a starter config file to Path. An existing file is left
// untouched unless force is set. It reports whether the file was written.
func Init(force bool) (string, bool, error) {
	path, err := Path()
	if err != nil {
		return "", false, err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, []byte(starterConfig()), 0644); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// starterConfig lists every built-in tool as a commented-out section.
func starterConfig() string {
	var b strings.Builder
	b.WriteString(`# ~/.worktree/config.toml
#
# Arguments for tools launched with "worktree <tool> create|switch".
# Your args are appended to the built-in defaults. To replace the built-in
# defaults entirely, set replace_defaults = true.
#
# Sections for tools without built-in defaults add new tool commands:
#
# [commands.aider]
# args = ["--no-auto-commits"]
`)
	for _, name := range KnownTools() {
		fmt.Fprintf(&b, "\n# [commands.%s]\n", name)
		fmt.Fprintf(&b, "# Built-in defaults:\n#   %s\n", quoteArgs(BuiltinArgs(name)))
		b.WriteString("# args = []\n# replace_defaults = false\n")
	}
	return b.String()
}

func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
