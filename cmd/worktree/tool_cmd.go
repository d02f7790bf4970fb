package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/worktree/internal/config"
	"github.com/raphi011/worktree/internal/launch"
)

// reservedNames are commands added after the tool commands.
var reservedNames = []string{"init", "completion", "help"}

// toolNames returns the built-in tools followed by the tools configured in
// cfg. Configured names that would shadow a command are skipped with a
// warning on cfg.
func toolNames(root *cobra.Command, cfg *config.Config) []string {
	taken := slices.Clone(reservedNames)
	for _, c := range root.Commands() {
		taken = append(taken, c.Name())
		taken = append(taken, c.Aliases...)
	}

	names := config.KnownTools()
	for _, name := range cfg.CustomTools() {
		if slices.Contains(taken, name) {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("[commands.%s] ignored: %q is a worktree command", name, name))
			continue
		}
		names = append(names, name)
	}
	return names
}

func newToolCmd(tool string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     tool,
		Short:   fmt.Sprintf("Run %s inside a worktree", tool),
		GroupID: GroupTool,
		Args:    cobra.NoArgs,
		Long: fmt.Sprintf(`Run %[1]s inside a worktree.

The arguments passed to %[1]s are the built-in defaults for %[1]s, then the
args from [commands.%[1]s] in the config file, then the arguments given on
the command line. Set replace_defaults = true in the config section to drop
the built-in defaults.`, tool),
	}

	cmd.AddCommand(newToolCreateCmd(tool))
	cmd.AddCommand(newToolSwitchCmd(tool))

	return cmd
}

func newToolCreateCmd(tool string) *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:   "create [name] [args...]",
		Short: fmt.Sprintf("Create a worktree and run %s in it", tool),
		Args:  cobra.ArbitraryArgs,
		Example: fmt.Sprintf(`  worktree %[1]s create                 # new default-named worktree
  worktree %[1]s create feature         # create (or reuse) .worktrees/feature
  worktree %[1]s create -- --help       # pass flags without naming the worktree`, tool),
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, rest := splitNameArgs(cmd, args)
			return enterWorktree(cmd.Context(), enterOptions{
				name:     name,
				create:   true,
				command:  toolCommand(cmd, tool, rest),
				copyPath: copyPath,
			})
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&copyPath, "copy", false, "Copy the worktree path to the clipboard")

	return cmd
}

func newToolSwitchCmd(tool string) *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:   "switch [name] [args...]",
		Short: fmt.Sprintf("Run %s in an existing worktree", tool),
		Args:  cobra.ArbitraryArgs,
		Example: fmt.Sprintf(`  worktree %[1]s switch feature
  worktree %[1]s switch feature --resume`, tool),
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, rest := splitNameArgs(cmd, args)
			return enterWorktree(cmd.Context(), enterOptions{
				name:     name,
				command:  toolCommand(cmd, tool, rest),
				copyPath: copyPath,
			})
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&copyPath, "copy", false, "Copy the worktree path to the clipboard")

	return cmd
}

// toolCommand builds the tool's argv: effective config args, then args.
func toolCommand(cmd *cobra.Command, tool string, args []string) launch.Command {
	toolCfg := config.FromContext(cmd.Context()).Tool(tool)
	return launch.Command{
		Program: tool,
		Args:    slices.Concat(toolCfg.Args(), args),
	}
}
