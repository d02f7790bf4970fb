package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/worktree/internal/config"
	"github.com/raphi011/worktree/internal/git"
	"github.com/raphi011/worktree/internal/launch"
	"github.com/raphi011/worktree/internal/log"
	"github.com/raphi011/worktree/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupWorktree = "worktree"
	GroupTool     = "tool"
	GroupConfig   = "config"
)

// exitError carries a launched child's non-zero exit status up to Execute,
// which exits with it without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// childResult turns a child's exit code into the command's error.
func childResult(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}

// newRootCmd builds the command tree. Tool commands depend on cfg.
func newRootCmd(cfg *config.Config) *cobra.Command {
	var verbose, quiet bool

	rootCmd := &cobra.Command{
		Use:   "worktree",
		Short: "Manage throwaway git worktrees under .worktrees/",
		Long: `worktree keeps a flat set of git worktrees in the .worktrees directory
at the root of a repository and starts a shell, a command or a coding
agent inside them.

It works from anywhere inside the repository, including from inside one
of its worktrees.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate mutually exclusive flags
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			// Create logger (stderr for diagnostics) now that flags are parsed
			cmd.SetContext(log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet)))

			// Skip git check for commands that never touch a repository
			switch cmd.Name() {
			case "completion", cobra.ShellCompRequestCmd, "help", "init":
				return nil
			}

			// Check git is available
			return git.CheckGit()
		},
		// Run is not set - shows help when no subcommand provided
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupWorktree, Title: "Worktree Commands:"},
		&cobra.Group{ID: GroupTool, Title: "Tool Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Worktree commands
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newClearCmd())

	// Tool commands
	for _, tool := range toolNames(rootCmd, cfg) {
		rootCmd.AddCommand(newToolCmd(tool))
	}

	// Config commands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute builds the command tree, runs it and exits the process.
func Execute() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "worktree: warning: %v (using defaults)\n", err)
	}
	rootCmd := newRootCmd(&cfg)
	for _, w := range cfg.Warnings {
		fmt.Fprintf(os.Stderr, "worktree: warning: %s in %s\n", w, cfg.Path)
	}

	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "worktree: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, &cfg)
	ctx = config.WithWorkDir(ctx, workDir)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)
	ctx = launch.WithLauncher(ctx, launch.New())

	err = rootCmd.ExecuteContext(ctx)
	cancel()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err on w and returns the process exit code for it.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(w, "worktree: %v\n", err)
	return 1
}
