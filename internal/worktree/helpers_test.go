package worktree

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// gitCmd runs git in dir and fails the test on error.
func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// setupTestRepo creates a git repo with main branch, initial commit, and git config.
// Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	repoPath := filepath.Join(tmpDir, "test-repo")
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatal(err)
	}

	gitCmd(t, repoPath, "init", "-b", "main")
	gitCmd(t, repoPath, "config", "user.email", "test@test.com")
	gitCmd(t, repoPath, "config", "user.name", "Test User")
	gitCmd(t, repoPath, "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# test\n"), 0644); err != nil {
		t.Fatal(err)
	}
	gitCmd(t, repoPath, "add", "README.md")
	gitCmd(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// newTestRegistry creates a repository and a registry for it.
func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	repo := setupTestRepo(t)
	layout, err := Resolve(context.Background(), repo)
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", repo, err)
	}
	return NewRegistry(layout), repo
}

func names(wts []Worktree) []string {
	var result []string
	for _, wt := range wts {
		result = append(result, wt.Name)
	}
	return result
}
