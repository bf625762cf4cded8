package app

import (
	"context"
	"errors"
)

// ErrNotInitialized is returned when a command runs without a wired App
var ErrNotInitialized = errors.New("application not initialized")

type appKey struct{}

// WithApp returns a copy of ctx carrying a for the command handlers
func WithApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// FromContext returns the App stored by WithApp
func FromContext(ctx context.Context) (*App, error) {
	a, ok := ctx.Value(appKey{}).(*App)
	if !ok || a == nil {
		return nil, ErrNotInitialized
	}
	return a, nil
}
