// Package audit keeps the human-readable narration of every state change.
package audit

import (
	"context"
	"fmt"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/security"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain/store"
)

// Event describes one action to narrate.
type Event struct {
	Action     string
	EntityType string
	EntityID   string
	Message    string
}

// Eventf builds an Event with a formatted message.
func Eventf(action, entityType, entityID, format string, args ...any) Event {
	return Event{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Message:    fmt.Sprintf(format, args...),
	}
}

// Service appends to and reads the audit trail.
type Service struct {
	txm tx.Manager[*store.Document]
	ids id.Source
}

// NewService creates a new audit service.
func NewService(txm tx.Manager[*store.Document], ids id.Source) *Service {
	return &Service{txm: txm, ids: ids}
}

// Record appends one entry to doc. Call it inside the transaction that
// performs the narrated change so both commit together.
func (s *Service) Record(doc *store.Document, actor security.Actor, e Event) entity.AuditEntry {
	entry := entity.AuditEntry{
		ID:         s.ids.NewID(),
		At:         s.ids.Now(),
		ActorID:    actor.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Message:    e.Message,
	}
	doc.Audit = append(doc.Audit, entry)
	return entry
}

// Last returns up to n entries, newest first. n <= 0 returns the whole trail.
func (s *Service) Last(ctx context.Context, actor security.Actor, n int) ([]entity.AuditEntry, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return nil, err
	}

	var out []entity.AuditEntry
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		out = newestFirst(doc.Audit, n)
		return nil
	})
	return out, err
}

func newestFirst(entries []entity.AuditEntry, n int) []entity.AuditEntry {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]entity.AuditEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}
