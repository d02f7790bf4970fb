// Package git provides git operations via shell commands.
//
// All operations call the git CLI through the internal cmd package rather
// than using a Go git library. This keeps behavior identical to the user's
// git (worktree bookkeeping, hooks, config) and gives us git's own atomic
// "destination already exists" check for worktree creation.
//
// # Repository Queries
//
//   - [CommonDir]: Shared .git directory, identical from every worktree
//   - [GitDir]: Per-worktree git directory, equals [CommonDir] in the main working tree
//   - [TopLevel]: Root of the working tree containing a path
//   - [IsBareRepository]: Detect repositories without a main working tree
//
// # Worktree Operations
//
//   - [ListWorktreesFromRepo]: Registered worktrees (porcelain output)
//   - [AddDetachedWorktree]: Create a detached worktree at a path
//   - [RemoveWorktree]: Remove a worktree, optionally forced
//   - [PruneWorktrees]: Drop registrations whose directories are gone
//
// Mutating operations retry with backoff while git reports index or ref lock
// contention from a concurrent git process (see [IsLockContention]).
package git
