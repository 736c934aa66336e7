// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces, not on the storage that backs them.
package tx

import (
	"context"
)

// Manager runs a unit of work against a state of type S.
//
// RunInTransaction hands fn a private working copy of the state. If fn
// returns nil the copy is committed and becomes the live state; if fn
// or the commit fails nothing is changed.
type Manager[S any] interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, state S) error) error

	// ReadOnly runs fn against the live state. fn must not modify it.
	ReadOnly(ctx context.Context, fn func(ctx context.Context, state S) error) error
}
