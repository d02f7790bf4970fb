package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/raphi011/worktree/internal/log"
)

// ErrLaunchFailed is returned when the child process could not be started.
var ErrLaunchFailed = errors.New("failed to launch")

const fallbackShell = "/bin/sh"

// Command is a program and its arguments. The zero value means the user's
// interactive shell.
type Command struct {
	Program string
	Args    []string
}

// IsShell reports whether c launches the interactive shell.
func (c Command) IsShell() bool {
	return c.Program == ""
}

// Launcher starts child processes attached to the current terminal.
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Getenv looks up the shell variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// New returns a launcher bound to the process's standard streams.
func New() *Launcher {
	return &Launcher{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

// Shell returns $SHELL, then $COMSPEC, then /bin/sh.
func (l *Launcher) Shell() string {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range []string{"SHELL", "COMSPEC"} {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return fallbackShell
}

// Run starts c in dir, waits for it and returns its exit code. A non-zero
// exit code is not an error. ctx is only checked before the start: once
// running, the child decides itself how to react to interrupts.
func (l *Launcher) Run(ctx context.Context, dir string, c Command) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	program, args := c.Program, c.Args
	if c.IsShell() {
		program, args = l.Shell(), nil
	}

	cmd := exec.Command(program, args...)
	cmd.Dir = dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	log.FromContext(ctx).Debug("launching", "dir", dir, "program", program, "args", args)

	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrLaunchFailed, program, err)
	}

	done := make(chan struct{})
	go forwardSignals(cmd.Process, sigCh, done)

	err := cmd.Wait()
	close(done)

	if code, ok := exitCode(cmd.ProcessState); ok {
		return code, nil
	}
	return 1, fmt.Errorf("waiting for %s: %w", program, err)
}

// forwardSignals relays termination requests to the child until done is
// closed. Interrupts are dropped: the terminal already delivered them to
// the child's process group.
func forwardSignals(p *os.Process, sigCh <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case sig := <-sigCh:
			if sig == syscall.SIGTERM || sig == syscall.SIGHUP {
				_ = p.Signal(sig)
			}
		}
	}
}

// exitCode maps a finished process state to a shell-style exit code.
func exitCode(state *os.ProcessState) (int, bool) {
	if state == nil {
		return 0, false
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), true
	}
	if code := state.ExitCode(); code >= 0 {
		return code, true
	}
	return 0, false
}
