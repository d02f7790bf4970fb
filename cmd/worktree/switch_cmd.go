package main

import (
	"github.com/spf13/cobra"
)

func newSwitchCmd() *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:     "switch [name] [command [args...]]",
		Short:   "Open a shell or run a command in an existing worktree",
		GroupID: GroupWorktree,
		Args:    cobra.ArbitraryArgs,
		Long: `Start your shell (or the given command) inside an existing worktree.

switch never creates a worktree: an unknown name is an error. Without a
name on an interactive terminal, a fuzzy picker lists all worktrees.`,
		Example: `  worktree switch feature           # shell in .worktrees/feature
  worktree switch feature git log   # run a command there
  worktree switch                   # pick a worktree interactively`,
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, rest := splitNameArgs(cmd, args)
			return enterWorktree(cmd.Context(), enterOptions{
				name:     name,
				command:  commandFromArgs(rest),
				copyPath: copyPath,
			})
		},
	}

	// Everything after the name belongs to the command
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&copyPath, "copy", false, "Copy the worktree path to the clipboard")

	return cmd
}
