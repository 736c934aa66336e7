// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"stockbook/internal/core/security"
)

type actorContextKey struct{}

// WithActor adds the acting user to context.
func WithActor(ctx context.Context, actor security.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns the acting user from context.
func GetActor(ctx context.Context) (security.Actor, bool) {
	a, ok := ctx.Value(actorContextKey{}).(security.Actor)
	return a, ok
}

// GetActorID returns the acting user's ID or empty string.
func GetActorID(ctx context.Context) string {
	if a, ok := GetActor(ctx); ok {
		return a.ID
	}
	return ""
}
