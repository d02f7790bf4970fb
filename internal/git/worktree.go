package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// WorktreeInfo contains worktree information from git worktree list.
type WorktreeInfo struct {
	Path     string
	Bare     bool
	Locked   bool
	Prunable bool // registered but its directory is gone
}

// ListWorktreesFromRepo returns all worktrees registered with the repository
// at repoPath (main working tree first) using git worktree list --porcelain.
// Output is NUL separated so paths may contain newlines. A listing that
// races with a concurrent git worktree add is retried.
func ListWorktreesFromRepo(ctx context.Context, repoPath string) ([]WorktreeInfo, error) {
	var output []byte
	err := retryWhile(ctx, isTransientListError, func() error {
		var err error
		output, err = outputGit(ctx, repoPath, "worktree", "list", "--porcelain", "-z")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %v", err)
	}
	return parseWorktreeList(string(output), repoPath), nil
}

// parseWorktreeList parses NUL separated porcelain output. Relative paths
// are resolved against base.
func parseWorktreeList(output, base string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	for _, field := range strings.Split(output, "\x00") {
		switch {
		case strings.HasPrefix(field, "worktree "):
			// Start of new worktree entry
			if current.Path != "" {
				worktrees = append(worktrees, current)
			}
			path := strings.TrimPrefix(field, "worktree ")
			if !filepath.IsAbs(path) && base != "" {
				path = filepath.Join(base, path)
			}
			current = WorktreeInfo{Path: path}
		case field == "bare":
			current.Bare = true
		case field == "locked" || strings.HasPrefix(field, "locked "):
			current.Locked = true
		case field == "prunable" || strings.HasPrefix(field, "prunable "):
			current.Prunable = true
		}
	}

	// Don't forget the last entry
	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	return worktrees
}

// AddDetachedWorktree creates a worktree at path with a detached HEAD at the
// current commit of repoPath. git refuses to create a worktree whose
// destination already exists, which makes this the arbiter when several
// processes race for the same path.
func AddDetachedWorktree(ctx context.Context, repoPath, path string) error {
	err := retryOnLockContention(ctx, func() error {
		return runGit(ctx, repoPath, "worktree", "add", "--detach", path)
	})
	if err != nil {
		return fmt.Errorf("git worktree add failed: %v", err)
	}
	return nil
}

// RemoveWorktree removes a git worktree. With force, uncommitted changes and
// untracked files are discarded.
func RemoveWorktree(ctx context.Context, repoPath, path string, force bool) error {
	args := []string{"worktree", "remove", path}
	if force {
		args = append(args, "--force")
	}
	err := retryOnLockContention(ctx, func() error {
		return runGit(ctx, repoPath, args...)
	})
	if err != nil {
		return fmt.Errorf("git worktree remove failed for %s: %v", path, err)
	}
	return nil
}

// PruneWorktrees prunes stale worktree references
func PruneWorktrees(ctx context.Context, repoPath string) error {
	return runGit(ctx, repoPath, "worktree", "prune")
}

// Lock contention backoff: start small, double, cap, give up after deadline.
const (
	lockRetryInitial  = 30 * time.Millisecond
	lockRetryMax      = 500 * time.Millisecond
	lockRetryDeadline = 3 * time.Second
)

// retryOnLockContention runs fn until it succeeds, fails with an error that
// is not lock contention, or the retry deadline passes.
func retryOnLockContention(ctx context.Context, fn func() error) error {
	return retryWhile(ctx, IsLockContention, fn)
}

// retryWhile runs fn with backoff while its error message satisfies
// retryable, until the retry deadline passes.
func retryWhile(ctx context.Context, retryable func(string) bool, fn func() error) error {
	start := time.Now()
	delay := lockRetryInitial

	for {
		err := fn()
		if err == nil || !retryable(err.Error()) || time.Since(start) >= lockRetryDeadline {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, lockRetryMax)
	}
}

// IsLockContention reports whether a git error message indicates that
// another git process holds a repository lock.
func IsLockContention(msg string) bool {
	s := strings.ToLower(msg)
	return strings.Contains(s, "index.lock") ||
		strings.Contains(s, "another git process seems to be running") ||
		strings.Contains(s, "could not write new index file") ||
		(strings.Contains(s, "unable to create") && strings.Contains(s, ".lock"))
}

// isTransientListError reports whether git worktree list failed because it
// read the admin files of a worktree that git worktree add was still
// writing.
func isTransientListError(msg string) bool {
	s := strings.ToLower(msg)
	return IsLockContention(msg) ||
		(strings.Contains(s, "failed to read") && strings.Contains(s, "worktrees"))
}
