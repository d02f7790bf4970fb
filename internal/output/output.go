// Package output writes what worktree commands produce as data: worktree
// names and paths from list, the config path from init. Anything a script
// should not parse (progress notes, warnings, verbose traces) goes to
// stderr through the log package instead, so `worktree list | fzf` and
// `cd "$(worktree list --path | head -1)"` see only data.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
)

type ctxKey struct{}

// Printer writes list and init results.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer writing to w.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext returns the attached Printer, or one on os.Stdout.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Printf writes a formatted result.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes one result per line, e.g. a worktree name.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer exposes the destination for encoders (list --json).
func (p *Printer) Writer() io.Writer {
	return p.w
}
