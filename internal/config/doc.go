// Package config handles loading of the worktree configuration.
//
// Configuration is read once per invocation from ~/.worktree/config.toml,
// or from the file named by the WORKTREE_CONFIG environment variable.
// A missing file is not an error: every tool keeps its built-in defaults.
//
// # Tool Sections
//
// Each [commands.NAME] section adjusts the argv of a named tool:
//
//	[commands.claude]
//	args = ["--model", "opus"]  # appended to the built-in defaults
//	replace_defaults = false    # true drops the built-in defaults
//
// Built-in tools are codex and claude. Sections for other names register
// additional tool verbs without built-in defaults.
package config
