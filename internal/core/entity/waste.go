package entity

import "time"

// WasteEntry records stock written off as waste. It is created once and never changes.
type WasteEntry struct {
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
	ActorID   string    `json:"actorId"`
	ProductID string    `json:"productId"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	Note      string    `json:"note,omitempty"`

	// Confirmed is set when the entry was logged despite a stock warning
	Confirmed bool `json:"confirmed,omitempty"`
}
