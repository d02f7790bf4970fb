package worktree

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default names are "<n><defaultSuffix>". Names with legacySuffix count as
// taken too so both naming generations never collide.
const (
	defaultSuffix = "-wt"
	legacySuffix  = "-worktree"
)

// ValidateName returns name unchanged if it is usable as a single path
// component under the container.
func ValidateName(name string) (string, error) {
	switch {
	case name == "":
		return "", fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	case name == "." || name == "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.HasPrefix(name, "/"), strings.HasPrefix(name, "../"):
		return "", fmt.Errorf("%w: %q must be relative to the worktrees directory", ErrInvalidName, name)
	case strings.ContainsRune(name, '/'), strings.ContainsRune(name, os.PathSeparator):
		return "", fmt.Errorf("%w: %q must not contain a path separator", ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return "", fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidName, name)
	}
	return name, nil
}

// NextDefaultName returns "<n>-wt" for the smallest n >= 0 such that
// neither "<n>-wt" nor "<n>-worktree" is in taken.
func NextDefaultName(taken map[string]bool) string {
	for n := 0; ; n++ {
		idx := strconv.Itoa(n)
		if !taken[idx+defaultSuffix] && !taken[idx+legacySuffix] {
			return idx + defaultSuffix
		}
	}
}

