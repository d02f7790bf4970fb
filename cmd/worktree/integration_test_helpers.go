//go:build integration

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/worktree/internal/config"
	"github.com/raphi011/worktree/internal/launch"
	"github.com/raphi011/worktree/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runGitCommand runs a git command and returns output
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// setupTestRepo creates a git repo with initial commit in a temp dir.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T) string {
	t.Helper()

	repoPath := filepath.Join(resolvePath(t, t.TempDir()), "myrepo")
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGitCommand(t, repoPath, "git", "init", "-b", "main")
	runGitCommand(t, repoPath, "git", "config", "user.email", "test@test.com")
	runGitCommand(t, repoPath, "git", "config", "user.name", "Test User")
	runGitCommand(t, repoPath, "git", "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# myrepo\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCommand(t, repoPath, "git", "add", "README.md")
	runGitCommand(t, repoPath, "git", "commit", "-m", "Initial commit")

	return repoPath
}

// writeScript writes an executable shell script.
func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("failed to write script %s: %v", path, err)
	}
}

// testEnv is a fake terminal environment: a $SHELL that records where it
// was started and exits with a fixed code.
type testEnv struct {
	shell    string
	shellLog string
	stdout   bytes.Buffer
	cfg      config.Config
}

// newTestEnv creates a fake shell that appends its working directory to
// the shell log and exits with shellExit.
func newTestEnv(t *testing.T, shellExit int) *testEnv {
	t.Helper()

	dir := resolvePath(t, t.TempDir())
	env := &testEnv{
		shell:    filepath.Join(dir, "fake-shell"),
		shellLog: filepath.Join(dir, "shell.log"),
		cfg:      config.Default(),
	}
	writeScript(t, env.shell, fmt.Sprintf("pwd -P >> %q\nexit %d\n", env.shellLog, shellExit))
	return env
}

// run executes worktree with args from workDir and returns the process
// exit code and the error the command tree returned.
func (e *testEnv) run(t *testing.T, workDir string, args ...string) (int, error) {
	t.Helper()

	e.stdout.Reset()
	launcher := &launch.Launcher{
		Stdin:  strings.NewReader(""),
		Stdout: &e.stdout,
		Stderr: io.Discard,
		Getenv: func(key string) string {
			if key == "SHELL" {
				return e.shell
			}
			return ""
		},
	}

	ctx := config.WithConfig(context.Background(), &e.cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = output.WithPrinter(ctx, &e.stdout)
	ctx = launch.WithLauncher(ctx, launcher)

	root := newRootCmd(&e.cfg)
	root.SetArgs(append([]string{"--quiet"}, args...))
	err := root.ExecuteContext(ctx)
	return exitCode(err, io.Discard), err
}

// shellStarts returns the directories the fake shell was started in.
func (e *testEnv) shellStarts(t *testing.T) []string {
	t.Helper()
	return readLines(t, e.shellLog)
}

// fakeTool writes a program to dir that records its working directory and
// arguments to logPath, one per line, and exits with code.
func fakeTool(t *testing.T, dir, name, logPath string, code int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeScript(t, path, fmt.Sprintf("{ pwd -P; echo \"$@\"; } >> %q\nexit %d\n", logPath, code))
	return path
}

// readLines returns the lines of path, nil if it does not exist.
func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// worktreePath returns the path of the named worktree of repo.
func worktreePath(repo, name string) string {
	return filepath.Join(repo, ".worktrees", name)
}
