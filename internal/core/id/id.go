// Package id provides identity and time sources for all ledger entities.
// UUIDv7 is time-ordered, allowing natural sorting by creation time.
package id

import (
	"time"

	"github.com/google/uuid"
)

// Source hands out opaque unique identifiers and timestamps.
// Workflows take it as a dependency so tests can substitute a deterministic one.
type Source interface {
	NewID() string
	Now() time.Time
}

// System is the production Source: UUIDv7 identifiers and the UTC wall clock.
type System struct{}

// NewID generates a new UUIDv7 string.
func (System) NewID() string {
	return New()
}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// New generates a new UUIDv7 (time-ordered UUID).
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.NewString()
	}
	return v.String()
}

// IsValid reports whether s parses as a UUID.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
