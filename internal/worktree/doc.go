// Package worktree manages the flat set of git worktrees kept in the
// .worktrees container directly under a repository root.
//
// # Layout
//
// [Resolve] maps any directory inside a repository, including directories
// inside linked worktrees, to the same [Layout]. The anchor is git's common
// directory, which every worktree of a repository shares, so invoking the
// tool from inside a managed worktree never produces a nested container.
//
// # Names
//
// A worktree name is a single path component. [ValidateName] enforces only
// that; spaces and non-ASCII characters are kept verbatim. When no name is
// given, [NextDefaultName] picks "<n>-wt" for the smallest unused n.
//
// # Creation
//
// [Registry.Create] is create-or-switch: an existing registered worktree is
// returned with alreadyExisted set. Concurrent creators of the same name are
// serialized by a flock in the git common dir when it can be taken in time,
// but git's own "destination already exists" refusal is the final arbiter,
// so a crashed or slow lock holder never blocks progress. A directory or
// file at the destination that git does not know about is never adopted or
// deleted ([ErrPathConflict]).
package worktree
