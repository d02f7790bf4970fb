// Package prompt provides the interactive prompts of the worktree CLI.
//
// Prompts render to stderr so stdout stays clean for piping. Callers check
// [IsInteractive] first and fall back to non-interactive behavior when no
// terminal is attached.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [Select]: Single selection from a fuzzy-filterable list
package prompt
