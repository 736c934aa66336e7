package store

import (
	"context"
	"errors"
)

// ErrNoDocument is returned by Repository.Load when nothing has been saved yet.
var ErrNoDocument = errors.New("store: no document")

// Repository persists the whole document. Save overwrites whatever was
// stored before; a failed Save must leave the previous document intact.
type Repository interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}
