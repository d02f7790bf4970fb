package main

import (
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:     "create [name] [command [args...]]",
		Short:   "Create a worktree and open a shell or run a command in it",
		GroupID: GroupWorktree,
		Args:    cobra.ArbitraryArgs,
		Long: `Create a worktree in .worktrees/<name> with a detached HEAD at the
current commit, then start your shell (or the given command) inside it.

Without a name the next free default name is used (0-wt, 1-wt, ...).
If the worktree already exists, create switches to it instead.

Everything after the name is the command to run. Use -- to run a command
in a new default-named worktree. The exit status of the command (or of
the shell) becomes the exit status of worktree.`,
		Example: `  worktree create                   # new default-named worktree, start a shell
  worktree create feature           # create (or reuse) .worktrees/feature
  worktree create feature make test # run make test in it
  worktree create -- go test ./...  # run a command in a fresh default-named worktree
  worktree create --copy feature    # also copy the path to the clipboard`,
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, rest := splitNameArgs(cmd, args)
			return enterWorktree(cmd.Context(), enterOptions{
				name:     name,
				create:   true,
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
