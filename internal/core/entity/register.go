package entity

import "time"

// MovementType defines what kind of ledger event a movement records.
type MovementType string

const (
	MovementIn     MovementType = "IN"
	MovementOut    MovementType = "OUT"
	MovementAdjust MovementType = "ADJUST"
	MovementWaste  MovementType = "WASTE"
)

// Reference types name the entity that caused a movement.
const (
	RefOrder         = "order"
	RefPurchaseOrder = "purchase_order"
	RefWaste         = "waste"
	RefAdjustment    = "adjustment"
	RefSeed          = "seed"
)

// Movement is one ledger-affecting event. Movements are immutable:
// they are appended once and never updated or deleted.
type Movement struct {
	ID        string       `json:"id"`
	At        time.Time    `json:"at"`
	ActorID   string       `json:"actorId"`
	Type      MovementType `json:"type"`
	ProductID string       `json:"productId"`

	// Quantity is the requested magnitude, never negative. When the ledger
	// clamps at zero it can exceed the change actually observed on hand.
	Quantity int64 `json:"quantity"`

	RefType string `json:"refType"`
	RefID   string `json:"refId"`
	Note    string `json:"note,omitempty"`
}

// StockBalance is the on-hand quantity of one product.
type StockBalance struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}
