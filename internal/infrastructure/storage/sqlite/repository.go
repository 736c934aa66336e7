// Package sqlite stores the ledger document as one row in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	_ "github.com/mattn/go-sqlite3"

	"stockbook/internal/domain/store"
	"stockbook/internal/infrastructure/storage/snapshot"
)

//go:embed schema.sql
var schemaSQL string

// currentSchemaVersion tracks the table layout in PRAGMA user_version.
const currentSchemaVersion = 1

const tableName = "documents"

var _ store.Repository = (*Repository)(nil)

// Repository keeps the document in the documents table under one key.
type Repository struct {
	db    *sql.DB
	key   string
	codec *snapshot.Codec
	psql  sq.StatementBuilderType
}

// Open creates or opens the database at path and applies the schema.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
func Open(path, key string, codec *snapshot.Codec) (*Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Repository{
		db:    db,
		key:   key,
		codec: codec,
		psql:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Load implements store.Repository.
func (r *Repository) Load(ctx context.Context) (*store.Document, error) {
	query, args, err := r.psql.
		Select("version", "compression_algo", "body").
		From(tableName).
		Where(sq.Eq{"key": r.key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var snap snapshot.Snapshot
	if err := sqlscan.Get(ctx, r.db, &snap, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoDocument
		}
		return nil, fmt.Errorf("select document: %w", err)
	}
	return r.codec.Decode(snap)
}

// Save implements store.Repository.
func (r *Repository) Save(ctx context.Context, doc *store.Document) error {
	snap, err := r.codec.Encode(doc)
	if err != nil {
		return err
	}

	query, args, err := r.psql.
		Insert(tableName).
		Columns("key", "version", "compression_algo", "body", "updated_at").
		Values(r.key, snap.Version, string(snap.Compression), snap.Body, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(key) DO UPDATE SET " +
			"version = excluded.version, " +
			"compression_algo = excluded.compression_algo, " +
			"body = excluded.body, " +
			"updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}
