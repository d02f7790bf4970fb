package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/worktree/internal/config"
	"github.com/raphi011/worktree/internal/launch"
	"github.com/raphi011/worktree/internal/log"
	"github.com/raphi011/worktree/internal/ui/prompt"
	"github.com/raphi011/worktree/internal/worktree"
)

// errNoSelection is returned when the picker is dismissed.
var errNoSelection = errors.New("no worktree selected")

// enterOptions describes what create, switch and the tool commands do
// once they know the worktree.
type enterOptions struct {
	name     string
	create   bool
	command  launch.Command
	copyPath bool
}

// openRegistry resolves the repository around the working directory.
func openRegistry(ctx context.Context) (*worktree.Registry, error) {
	layout, err := worktree.Resolve(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("resolved repository", "root", layout.Root, "container", layout.Container)
	return worktree.NewRegistry(layout), nil
}

// enterWorktree creates or looks up the worktree and runs the command (or
// the shell) inside it. A non-zero child exit status is returned as
// *exitError.
func enterWorktree(ctx context.Context, opts enterOptions) error {
	l := log.FromContext(ctx)

	reg, err := openRegistry(ctx)
	if err != nil {
		return err
	}

	var wt worktree.Worktree
	if opts.create {
		var existed bool
		wt, existed, err = reg.Create(ctx, opts.name)
		if err != nil {
			return err
		}
		if existed {
			l.Printf("Switching to existing worktree %s\n", wt.Name)
		} else {
			l.Printf("Created worktree %s at %s\n", wt.Name, wt.Path)
		}
	} else {
		wt, err = findWorktree(ctx, reg, opts.name)
		if errors.Is(err, errNoSelection) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	if opts.copyPath {
		if err := clipboard.WriteAll(wt.Path); err != nil {
			l.Printf("Warning: failed to copy to clipboard: %v\n", err)
		} else {
			l.Debug("copied path to clipboard", "path", wt.Path)
		}
	}

	code, err := launch.FromContext(ctx).Run(ctx, wt.Path, opts.command)
	if err != nil {
		return err
	}
	return childResult(code)
}

// findWorktree looks name up, or lets the user pick one when name is empty
// and a terminal is attached.
func findWorktree(ctx context.Context, reg *worktree.Registry, name string) (worktree.Worktree, error) {
	if name != "" {
		wt, err := reg.Lookup(ctx, name)
		if errors.Is(err, worktree.ErrNotFound) {
			if suggestions := reg.Suggest(ctx, name); len(suggestions) > 0 {
				return wt, fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
			}
		}
		return wt, err
	}

	if !prompt.IsInteractive() {
		return worktree.Worktree{}, errors.New("worktree name required when not running in a terminal")
	}

	wts, err := reg.List(ctx)
	if err != nil {
		return worktree.Worktree{}, err
	}
	if len(wts) == 0 {
		return worktree.Worktree{}, fmt.Errorf("no worktrees in %s, create one with 'worktree create'", reg.Layout().Container)
	}

	options := make([]prompt.Option, len(wts))
	for i, wt := range wts {
		options[i] = prompt.Option{Label: wt.Name, Detail: wt.Path}
	}
	res, err := prompt.Select("Switch to worktree", options)
	if err != nil {
		return worktree.Worktree{}, err
	}
	if res.Cancelled {
		return worktree.Worktree{}, errNoSelection
	}
	return wts[res.Index], nil
}

// splitNameArgs separates the optional worktree name from the command that
// follows it. "--" before any positional argument means "no name".
// Flag parsing stops at the first positional argument, so a "--" right
// after the name arrives literally and is dropped here.
func splitNameArgs(cmd *cobra.Command, args []string) (string, []string) {
	if cmd.ArgsLenAtDash() == 0 || len(args) == 0 {
		return "", args
	}
	name, rest := args[0], args[1:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	return name, rest
}

// commandFromArgs returns the command to launch, the shell when args is
// empty.
func commandFromArgs(args []string) launch.Command {
	if len(args) == 0 {
		return launch.Command{}
	}
	return launch.Command{Program: args[0], Args: args[1:]}
}
