package config

import (
	"maps"
	"slices"
)

var builtinArgs = map[string][]string{
	"codex":  {"--dangerously-bypass-approvals-and-sandbox"},
	"claude": {"--dangerously-skip-permissions"},
}

// ToolConfig is the resolved argument configuration of one named tool.
type ToolConfig struct {
	Name            string
	DefaultArgs     []string
	ExtraArgs       []string
	ReplaceDefaults bool
}

// Args returns the tool's effective argv, without the program name.
func (t ToolConfig) Args() []string {
	return EffectiveArgs(t.DefaultArgs, t.ExtraArgs, t.ReplaceDefaults)
}

// EffectiveArgs returns extras when replace is set and defaults followed by
// extras otherwise. The inputs are not modified.
func EffectiveArgs(defaults, extras []string, replace bool) []string {
	if replace {
		return slices.Clone(extras)
	}
	return slices.Concat(defaults, extras)
}

// BuiltinArgs returns the built-in default args of a tool, nil for
// unknown tools.
func BuiltinArgs(name string) []string {
	return slices.Clone(builtinArgs[name])
}

// IsBuiltinTool reports whether name has built-in defaults.
func IsBuiltinTool(name string) bool {
	_, ok := builtinArgs[name]
	return ok
}

// KnownTools returns the sorted names of the built-in tools.
func KnownTools() []string {
	return slices.Sorted(maps.Keys(builtinArgs))
}
