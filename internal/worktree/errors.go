package worktree

import "errors"

var (
	// ErrNotARepository is returned when no enclosing repository with a
	// working tree can be found.
	ErrNotARepository = errors.New("not a git repository")

	// ErrInvalidName is returned for names that are not a single path component.
	ErrInvalidName = errors.New("invalid worktree name")

	// ErrNotFound is returned when no registered worktree has the given name.
	ErrNotFound = errors.New("worktree not found")

	// ErrCreationFailed wraps a git failure other than losing a creation race.
	ErrCreationFailed = errors.New("failed to create worktree")

	// ErrPathConflict is returned when the destination exists on disk but is
	// not a registered worktree.
	ErrPathConflict = errors.New("path conflict")
)
