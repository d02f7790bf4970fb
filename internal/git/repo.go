package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// CommonDir returns the absolute path of the repository's common git
// directory as seen from dir. For the main working tree and for every linked
// worktree this is the same directory (usually <root>/.git), which makes it
// the anchor for locating the repository root from anywhere inside it.
func CommonDir(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	path := strings.TrimSpace(string(output))
	if path == "" {
		return "", fmt.Errorf("not in a git repository: empty git common dir")
	}
	return filepath.Clean(path), nil
}

// GitDir returns the absolute git directory of the worktree containing dir.
// It equals CommonDir in the main working tree.
func GitDir(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--path-format=absolute", "--git-dir")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	return filepath.Clean(strings.TrimSpace(string(output))), nil
}

// TopLevel returns the root of the working tree containing dir.
// Inside a linked worktree this is the worktree, not the main repository.
func TopLevel(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git work tree: %v", err)
	}
	return filepath.Clean(strings.TrimSpace(string(output))), nil
}

// IsBareRepository reports whether dir belongs to a bare repository.
func IsBareRepository(ctx context.Context, dir string) bool {
	output, err := outputGit(ctx, dir, "rev-parse", "--is-bare-repository")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "true"
}
