package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/worktree/internal/config"
	"github.com/raphi011/worktree/internal/log"
	"github.com/raphi011/worktree/internal/output"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Write a starter config file",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Write a starter config file to ~/.worktree/config.toml (or to the path in
$WORKTREE_CONFIG) with a commented-out section for every built-in tool.

An existing file is never overwritten unless --force is given.`,
		Example: `  worktree init           # create the config if missing
  worktree init --force   # reset it to the starter template`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path, created, err := config.Init(force)
			if err != nil {
				return err
			}
			if !created {
				log.FromContext(ctx).Printf("Config already exists at %s (use --force to overwrite)\n", displayPath(path))
				return nil
			}
			output.FromContext(ctx).Printf("initialized config at %s\n", displayPath(path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

// displayPath abbreviates the home directory to ~.
func displayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if rel, err := filepath.Rel(home, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "../") {
		return filepath.Join("~", rel)
	}
	return path
}
