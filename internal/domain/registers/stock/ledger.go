// Package stock holds the inventory ledger and the movement log.
package stock

import (
	"math"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/security"
	"stockbook/internal/domain/store"
)

// OnHand returns the pieces on hand for productID, zero if never seen.
func OnHand(doc *store.Document, productID string) int64 {
	return doc.Inventory[productID]
}

// ApplyDelta adds delta to the ledger entry for productID, flooring the
// result at zero, and appends m to the movement log when m is non-nil.
//
// The movement keeps the magnitude the caller requested even when the
// floor removed less than that from stock. An increase that would overflow
// the entry is rejected and leaves doc untouched.
func ApplyDelta(doc *store.Document, productID string, delta int64, m *entity.Movement) (int64, error) {
	current := OnHand(doc, productID)
	if delta > 0 && current > math.MaxInt64-delta {
		return current, apperror.NewFieldValidation("quantity", "stock on hand would exceed the maximum quantity").
			WithDetail("product_id", productID).
			WithDetail("on_hand", current).
			WithDetail("delta", delta)
	}
	next := max(0, current+delta)
	doc.Inventory[productID] = next
	if m != nil {
		doc.Movements = append(doc.Movements, *m)
	}
	return next, nil
}

// MovementSpec is everything about a movement except its identity.
type MovementSpec struct {
	Type      entity.MovementType
	ProductID string
	Quantity  int64
	RefType   string
	RefID     string
	Note      string
}

// NewMovement stamps spec with a fresh id, the current time and the actor.
func NewMovement(ids id.Source, actor security.Actor, spec MovementSpec) *entity.Movement {
	return &entity.Movement{
		ID:        ids.NewID(),
		At:        ids.Now(),
		ActorID:   actor.ID,
		Type:      spec.Type,
		ProductID: spec.ProductID,
		Quantity:  max(0, spec.Quantity),
		RefType:   spec.RefType,
		RefID:     spec.RefID,
		Note:      spec.Note,
	}
}
