package worktree

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/raphi011/worktree/internal/git"
)

// ContainerName is the directory under the repository root that holds
// every managed worktree.
const ContainerName = ".worktrees"

// Layout locates a repository and its worktrees container.
type Layout struct {
	Root      string // main working tree, symlinks resolved
	CommonDir string // shared git directory, usually Root/.git
	Container string // Root/.worktrees
}

// ContainerPath returns the container directory for a repository root.
func ContainerPath(root string) string {
	return filepath.Join(root, ContainerName)
}

// Resolve finds the repository enclosing workDir. Called from anywhere
// inside the main working tree or inside any linked worktree it returns the
// same Layout.
func Resolve(ctx context.Context, workDir string) (Layout, error) {
	commonDir, err := git.CommonDir(ctx, workDir)
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %s", ErrNotARepository, workDir)
	}

	root, err := rootFromCommonDir(ctx, workDir, commonDir)
	if err != nil {
		return Layout{}, err
	}
	root = realPath(root)

	// A repository that itself lives inside a container would get a
	// .worktrees/.worktrees tree.
	if slices.Contains(strings.Split(filepath.ToSlash(root), "/"), ContainerName) {
		return Layout{}, fmt.Errorf("repository root %s is inside a %s directory, refusing to nest containers", root, ContainerName)
	}

	return Layout{
		Root:      root,
		CommonDir: realPath(commonDir),
		Container: ContainerPath(root),
	}, nil
}

func rootFromCommonDir(ctx context.Context, workDir, commonDir string) (string, error) {
	if filepath.Base(commonDir) == ".git" {
		return filepath.Dir(commonDir), nil
	}

	// Separate git dir or submodule.
	if git.IsBareRepository(ctx, workDir) {
		return "", fmt.Errorf("%w: %s is a bare repository", ErrNotARepository, commonDir)
	}
	top, err := git.TopLevel(ctx, workDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotARepository, workDir)
	}
	gitDir, err := git.GitDir(ctx, workDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotARepository, workDir)
	}
	if realPath(gitDir) == realPath(commonDir) {
		return top, nil
	}

	// Linked worktree: only a managed one tells us where its root is.
	if filepath.Base(filepath.Dir(top)) == ContainerName {
		return filepath.Dir(filepath.Dir(top)), nil
	}
	return "", fmt.Errorf("%w: cannot locate the main working tree of %s", ErrNotARepository, top)
}

// realPath resolves symlinks, falling back to the cleaned path for paths
// that do not exist (yet).
func realPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}
