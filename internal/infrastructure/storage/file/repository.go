// Package file stores the ledger document as a single JSON file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"stockbook/internal/domain/store"
	"stockbook/internal/infrastructure/storage/snapshot"
)

var _ store.Repository = (*Repository)(nil)

// Repository reads and writes one snapshot file. Writes go to a temp file
// in the same directory and are renamed over the target, so a crash
// mid-write leaves the previous document in place.
type Repository struct {
	path  string
	codec *snapshot.Codec
}

// New creates a repository backed by path. The directory is created on first save.
func New(path string, codec *snapshot.Codec) *Repository {
	return &Repository{path: path, codec: codec}
}

// Path returns the file location.
func (r *Repository) Path() string {
	return r.path
}

// Load implements store.Repository.
func (r *Repository) Load(ctx context.Context) (*store.Document, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return r.codec.Decode(snap)
}

// Save implements store.Repository.
func (r *Repository) Save(ctx context.Context, doc *store.Document) error {
	snap, err := r.codec.Encode(doc)
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
