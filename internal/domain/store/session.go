package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/tx"
	"stockbook/pkg/logger"
)

var tracer = otel.Tracer("stockbook/store")

// Compile-time check that Session implements tx.Manager.
var _ tx.Manager[*Document] = (*Session)(nil)

// Seeder builds a fresh document when nothing usable is stored.
type Seeder func(ctx context.Context) (*Document, error)

// Session owns the live document and is the only commit point.
//
// All transactions and reads are serialized by one lock, so at most one
// mutation is in flight and readers never see a half-applied change.
type Session struct {
	mu   sync.RWMutex
	doc  *Document
	repo Repository
}

// Open loads the stored document, seeding and saving a new one when the
// repository is empty or holds a different schema version.
func Open(ctx context.Context, repo Repository, seed Seeder) (*Session, error) {
	doc, err := repo.Load(ctx)
	switch {
	case errors.Is(err, ErrNoDocument):
		logger.Info(ctx, "no stored document, seeding")
		doc = nil
	case err != nil:
		return nil, apperror.NewStorage("load", err)
	case doc.Version != SchemaVersion:
		logger.Warn(ctx, "stored document has unsupported version, reseeding",
			"stored_version", doc.Version,
			"expected_version", SchemaVersion,
		)
		doc = nil
	}

	s := &Session{repo: repo, doc: doc}
	if doc == nil {
		if err := s.Reset(ctx, seed); err != nil {
			return nil, err
		}
	} else {
		doc.normalize()
	}
	return s, nil
}

// Reset replaces the document with a freshly seeded one and saves it.
func (s *Session) Reset(ctx context.Context, seed Seeder) error {
	fresh, err := seed(ctx)
	if err != nil {
		return fmt.Errorf("seed document: %w", err)
	}
	fresh.Version = SchemaVersion
	fresh.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, fresh); err != nil {
		logger.Error(ctx, "save seeded document failed", "error", err)
		return apperror.NewStorage("save", err)
	}
	s.doc = fresh
	return nil
}

// RunInTransaction runs fn on a clone of the live document. The clone is
// saved and swapped in only when fn succeeds and the save succeeds.
func (s *Session) RunInTransaction(ctx context.Context, fn func(ctx context.Context, doc *Document) error) error {
	ctx, span := tracer.Start(ctx, "store.transaction",
		trace.WithAttributes(attribute.Bool("tx.read_only", false)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.doc.Clone()
	if err := fn(ctx, work); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := s.repo.Save(ctx, work); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		logger.Error(ctx, "save document failed", "error", err)
		return apperror.NewStorage("save", err)
	}

	s.doc = work
	logger.Debug(ctx, "document committed", "movements", len(work.Movements), "audit", len(work.Audit))
	return nil
}

// ReadOnly runs fn against the live document under the read lock.
func (s *Session) ReadOnly(ctx context.Context, fn func(ctx context.Context, doc *Document) error) error {
	ctx, span := tracer.Start(ctx, "store.read",
		trace.WithAttributes(attribute.Bool("tx.read_only", true)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, s.doc)
}
