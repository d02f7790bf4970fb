// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// It wraps [os/exec.Cmd] to capture stderr and include it in error messages,
// making git failures readable, and echoes every invocation through the
// context logger when --verbose is set.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoRoot, "git", "worktree", "prune"); err != nil {
//	    // err carries git's stderr
//	}
//
//	out, err := cmd.OutputContext(ctx, "", "git", "worktree", "list", "--porcelain")
//
// Interactive children (shells, named tools) do not go through this package;
// they are started by the launch package with inherited stdio.
package cmd
