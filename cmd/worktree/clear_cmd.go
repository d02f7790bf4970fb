package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/worktree/internal/launch"
	"github.com/raphi011/worktree/internal/log"
	"github.com/raphi011/worktree/internal/ui/prompt"
)

func newClearCmd() *cobra.Command {
	var (
		force bool
		shell bool
	)

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Remove all worktrees",
		GroupID: GroupWorktree,
		Args:    cobra.NoArgs,
		Long: `Remove every worktree in .worktrees/, including uncommitted changes,
then the .worktrees directory itself.

Worktrees registered elsewhere in the repository are left alone, as are
files in .worktrees/ that are not worktrees. Clearing an already clear
repository does nothing.

On an interactive terminal clear asks for confirmation unless --force is
given. With --shell a shell is started at the repository root afterwards,
which is handy when clear was run from inside one of the removed
worktrees.`,
		Example: `  worktree clear           # asks first
  worktree clear --force   # no questions
  worktree clear --shell   # continue in a shell at the repository root`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			reg, err := openRegistry(ctx)
			if err != nil {
				return err
			}

			if !force && prompt.IsInteractive() {
				names, err := reg.Names(ctx)
				if err != nil {
					return err
				}
				if len(names) > 0 {
					res, err := prompt.Confirm(fmt.Sprintf("Remove %d worktree(s) and all their changes?", len(names)), names...)
					if err != nil {
						return err
					}
					if !res.Confirmed {
						l.Println("Aborted")
						return nil
					}
				}
			}

			removed, err := reg.Clear(ctx)
			if removed > 0 {
				l.Printf("Removed %d worktree(s)\n", removed)
			}
			if err != nil {
				return err
			}

			if !shell {
				return nil
			}
			code, err := launch.FromContext(ctx).Run(ctx, reg.Layout().Root, launch.Command{})
			if err != nil {
				return err
			}
			return childResult(code)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&shell, "shell", false, "Start a shell at the repository root afterwards")

	return cmd
}
