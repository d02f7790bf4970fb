package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/raphi011/worktree/internal/log"
)

// quietCtx carries a logger that is neither verbose nor quiet.
func quietCtx() context.Context {
	return log.WithLogger(context.Background(), log.New(&bytes.Buffer{}, false, false))
}

func TestOutputContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dir     string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "stdout is returned",
			args: []string{"-c", "printf 'worktree /repo\\0'"},
			want: "worktree /repo\x00",
		},
		{
			name: "runs in dir",
			dir:  "/",
			args: []string{"-c", "pwd"},
			want: "/\n",
		},
		{
			name:    "stderr becomes the error",
			args:    []string{"-c", "echo \"fatal: '/repo/.worktrees/a' already exists\" >&2; exit 128"},
			wantErr: "fatal: '/repo/.worktrees/a' already exists",
		},
		{
			name:    "exit status without stderr",
			args:    []string{"-c", "exit 3"},
			wantErr: "exit status 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := OutputContext(quietCtx(), tt.dir, "sh", tt.args...)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("OutputContext() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("OutputContext() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("OutputContext() = %q, want %q", out, tt.want)
			}

			// RunContext shares the same path and only drops stdout.
			if err := RunContext(quietCtx(), tt.dir, "sh", tt.args...); err != nil {
				t.Errorf("RunContext() error = %v", err)
			}
		})
	}
}

func TestOutputContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(quietCtx())
	cancel()

	if _, err := OutputContext(ctx, "", "sleep", "10"); !errors.Is(err, context.Canceled) {
		t.Errorf("OutputContext() error = %v, want context.Canceled", err)
	}
	if err := RunContext(ctx, "", "sleep", "10"); !errors.Is(err, context.Canceled) {
		t.Errorf("RunContext() error = %v, want context.Canceled", err)
	}
}

func TestRunContext_VerboseEchoesCommand(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))
	if err := RunContext(ctx, "/", "git", "--version"); err != nil {
		t.Fatalf("RunContext() error = %v", err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "[/] $ git --version (") {
		t.Errorf("log output = %q, want the command echoed with its dir", got)
	}
}
