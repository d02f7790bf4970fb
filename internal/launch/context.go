package launch

import "context"

type ctxKey struct{}

// WithLauncher attaches a launcher to the context.
func WithLauncher(ctx context.Context, l *Launcher) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the launcher from context.
// Returns New() if none is attached.
func FromContext(ctx context.Context) *Launcher {
	if l, ok := ctx.Value(ctxKey{}).(*Launcher); ok {
		return l
	}
	return New()
}
