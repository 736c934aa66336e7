package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"stockbook/internal/domain/store"
	"stockbook/internal/infrastructure/storage/snapshot"
)

const documentsTable = "ledger_documents"

const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS ledger_documents (
    key              TEXT PRIMARY KEY,
    version          INTEGER     NOT NULL,
    compression_algo TEXT        NOT NULL DEFAULT 'none',
    body             BYTEA       NOT NULL,
    revision         BIGINT      NOT NULL DEFAULT 1,
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var _ store.Repository = (*DocumentRepo)(nil)

// DocumentRepo keeps the ledger document as one row of ledger_documents.
type DocumentRepo struct {
	pool  *Pool
	key   string
	codec *snapshot.Codec
}

// NewDocumentRepo creates a repository for the document stored under key.
func NewDocumentRepo(pool *Pool, key string, codec *snapshot.Codec) *DocumentRepo {
	return &DocumentRepo{pool: pool, key: key, codec: codec}
}

// EnsureSchema creates the documents table if it does not exist.
func (r *DocumentRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("create %s: %w", documentsTable, err)
	}
	return nil
}

// Builder returns a new squirrel builder.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func selectDocument(key string) (string, []any, error) {
	return Builder().
		Select("version", "compression_algo", "body").
		From(documentsTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
}

func upsertDocument(key string, snap snapshot.Snapshot) (string, []any, error) {
	return Builder().
		Insert(documentsTable).
		Columns("key", "version", "compression_algo", "body").
		Values(key, snap.Version, string(snap.Compression), snap.Body).
		Suffix("ON CONFLICT (key) DO UPDATE SET " +
			"version = EXCLUDED.version, " +
			"compression_algo = EXCLUDED.compression_algo, " +
			"body = EXCLUDED.body, " +
			"revision = " + documentsTable + ".revision + 1, " +
			"updated_at = NOW()").
		ToSql()
}

// Load implements store.Repository.
func (r *DocumentRepo) Load(ctx context.Context) (*store.Document, error) {
	ctx, span := tracer.Start(ctx, "document.load",
		trace.WithAttributes(attribute.String("document.key", r.key)))
	defer span.End()

	sql, args, err := selectDocument(r.key)
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var snap snapshot.Snapshot
	if err := pgxscan.Get(ctx, r.pool, &snap, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNoDocument
		}
		return nil, fmt.Errorf("select document: %w", err)
	}
	return r.codec.Decode(snap)
}

// Save implements store.Repository.
func (r *DocumentRepo) Save(ctx context.Context, doc *store.Document) error {
	ctx, span := tracer.Start(ctx, "document.save",
		trace.WithAttributes(attribute.String("document.key", r.key)))
	defer span.End()

	snap, err := r.codec.Encode(doc)
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.String("document.compression", string(snap.Compression)),
		attribute.Int("document.bytes", len(snap.Body)),
	)

	sql, args, err := upsertDocument(r.key, snap)
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	return runInTx(ctx, r.pool.Pool, DefaultTxOptions(), func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("upsert document: %w", err)
		}
		return nil
	})
}
