// Package testutil provides deterministic collaborators for tests.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

// Epoch is the first instant handed out by a DeterministicSource.
var Epoch = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

// DeterministicSource is an id.Source that yields "id-0001", "id-0002", ...
// and a clock that advances one second per call to Now.
//
// Thread-safety: all methods are safe for concurrent use.
type DeterministicSource struct {
	mu    sync.Mutex
	ids   int64
	ticks int64
	start time.Time
}

// NewDeterministicSource creates a source starting at Epoch.
func NewDeterministicSource() *DeterministicSource {
	return &DeterministicSource{start: Epoch}
}

// NewDeterministicSourceAt creates a source whose clock starts at start.
func NewDeterministicSourceAt(start time.Time) *DeterministicSource {
	return &DeterministicSource{start: start.UTC()}
}

// NewID returns the next sequential identifier.
func (s *DeterministicSource) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids++
	return fmt.Sprintf("id-%04d", s.ids)
}

// Now returns the next instant.
func (s *DeterministicSource) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.start.Add(time.Duration(s.ticks) * time.Second)
	s.ticks++
	return t
}

// IssuedIDs returns how many identifiers have been handed out.
func (s *DeterministicSource) IssuedIDs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids
}
