// Package snapshot encodes the ledger document for storage.
// Bodies are JSON, zstd-compressed once they pass a size threshold; the
// algorithm is stored next to the body so either form can be read back.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"stockbook/internal/domain/store"
)

// CompressionAlgo specifies the compression algorithm used for a body.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the body size above which zstd kicks in.
const DefaultCompressThreshold = 10 * 1024 // 10KB

// Snapshot is one stored document.
type Snapshot struct {
	Version     int             `json:"version" db:"version"`
	Compression CompressionAlgo `json:"compression" db:"compression_algo"`
	Body        []byte          `json:"body" db:"body"`
}

// Codec converts documents to snapshots and back. Safe for concurrent use.
type Codec struct {
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewCodec creates a codec. threshold <= 0 selects DefaultCompressThreshold.
func NewCodec(threshold int) (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	if threshold <= 0 {
		threshold = DefaultCompressThreshold
	}

	return &Codec{
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: threshold,
	}, nil
}

// Encode serializes doc, compressing large bodies.
func (c *Codec) Encode(doc *store.Document) (Snapshot, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal document: %w", err)
	}

	snap := Snapshot{Version: doc.Version, Compression: CompressionNone, Body: body}
	if len(body) > c.compressThreshold {
		snap.Body = c.encoder.EncodeAll(body, nil)
		snap.Compression = CompressionZstd
	}
	return snap, nil
}

// Decode restores a document. A snapshot written by another schema
// version decodes to a document carrying only that version, which
// store.Open treats as a signal to reseed.
func (c *Codec) Decode(snap Snapshot) (*store.Document, error) {
	if snap.Version != store.SchemaVersion {
		return &store.Document{Version: snap.Version}, nil
	}

	body := snap.Body
	switch snap.Compression {
	case CompressionNone, "":
	case CompressionZstd:
		decompressed, err := c.decoder.DecodeAll(snap.Body, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress document: %w", err)
		}
		body = decompressed
	default:
		return nil, fmt.Errorf("unknown compression %q", snap.Compression)
	}

	var doc store.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}
