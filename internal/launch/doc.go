// Package launch runs an interactive shell or a command inside a worktree
// and reports the child's exit status unchanged.
//
// The child inherits stdin, stdout and stderr. Terminal-generated SIGINT and
// SIGQUIT reach it through the foreground process group, so the launcher
// ignores them for itself while the child runs. SIGTERM and SIGHUP sent to
// the launcher are forwarded to the child. A child killed by a signal
// reports 128+signal, the way shells do.
package launch
