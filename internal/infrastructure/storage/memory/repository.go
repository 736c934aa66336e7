// Package memory provides an in-process document repository for tests and
// ephemeral runs. Documents are stored encoded, so a saved document never
// aliases the caller's copy.
package memory

import (
	"context"
	"sync"

	"stockbook/internal/domain/store"
	"stockbook/internal/infrastructure/storage/snapshot"
)

var _ store.Repository = (*Repository)(nil)

// Repository keeps the last saved snapshot in memory.
type Repository struct {
	mu      sync.Mutex
	codec   *snapshot.Codec
	snap    *snapshot.Snapshot
	saves   int
	saveErr error
}

// New creates an empty repository.
func New(codec *snapshot.Codec) *Repository {
	return &Repository{codec: codec}
}

// Load implements store.Repository.
func (r *Repository) Load(ctx context.Context) (*store.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snap == nil {
		return nil, store.ErrNoDocument
	}
	return r.codec.Decode(*r.snap)
}

// Save implements store.Repository.
func (r *Repository) Save(ctx context.Context, doc *store.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}

	snap, err := r.codec.Encode(doc)
	if err != nil {
		return err
	}
	r.snap = &snap
	r.saves++
	return nil
}

// Put stores a raw snapshot, bypassing the codec.
func (r *Repository) Put(snap snapshot.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = &snap
}

// FailSaves makes every following Save return err until called with nil.
func (r *Repository) FailSaves(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveErr = err
}

// Saves returns the number of successful saves.
func (r *Repository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
