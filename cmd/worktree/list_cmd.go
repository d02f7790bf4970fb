package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/raphi011/worktree/internal/output"
)

// worktreeJSON is the --json representation of a worktree.
type worktreeJSON struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func newListCmd() *cobra.Command {
	var (
		showPath   bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees",
		Aliases: []string{"ls"},
		GroupID: GroupWorktree,
		Args:    cobra.NoArgs,
		Long: `List the worktrees in .worktrees/, one name per line, sorted by name.

Worktrees registered elsewhere in the repository are not listed. Prints
nothing when there are no worktrees.`,
		Example: `  worktree list          # names
  worktree list --path   # absolute paths
  worktree list --json   # name and path as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			reg, err := openRegistry(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				result := []worktreeJSON{}
				for wt, err := range reg.All(ctx) {
					if err != nil {
						return err
					}
					result = append(result, worktreeJSON{Name: wt.Name, Path: wt.Path})
				}
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			for wt, err := range reg.All(ctx) {
				if err != nil {
					return err
				}
				if showPath {
					out.Println(wt.Path)
				} else {
					out.Println(wt.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "Print absolute paths instead of names")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.MarkFlagsMutuallyExclusive("path", "json")

	return cmd
}
