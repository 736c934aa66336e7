package entity

import "time"

// AuditEntry is a human-readable narration of one state-changing action.
type AuditEntry struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	ActorID string    `json:"actorId"`

	// Action is a dotted machine name such as "order.ship"
	Action     string `json:"action"`
	EntityType string `json:"entityType,omitempty"`
	EntityID   string `json:"entityId,omitempty"`

	Message string `json:"message"`
}
