package dto

import (
	"stockbook/internal/core/entity"
	"stockbook/internal/domain/documents/waste"
	"stockbook/internal/domain/registers/stock"
)

// AdjustRequest sets the on-hand quantity of a product.
type AdjustRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	NewQuantity int64  `json:"newQuantity"`
	Reason      string `json:"reason" binding:"required"`
}

// ToInput converts to domain input.
func (r *AdjustRequest) ToInput() stock.AdjustInput {
	return stock.AdjustInput{ProductID: r.ProductID, NewQuantity: r.NewQuantity, Reason: r.Reason}
}

// MovementListRequest holds movement list query parameters.
type MovementListRequest struct {
	ProductID string `form:"productId"`
	Type      string `form:"type"`
	RefID     string `form:"refId"`
	Limit     int    `form:"limit" binding:"gte=0"`
}

// ToFilter converts to domain filter.
func (r *MovementListRequest) ToFilter() stock.MovementFilter {
	return stock.MovementFilter{
		ProductID: r.ProductID,
		Type:      entity.MovementType(r.Type),
		RefID:     r.RefID,
		Limit:     r.Limit,
	}
}

// LogWasteRequest writes off damaged or expired stock.
type LogWasteRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
	Note      string `json:"note,omitempty"`

	// Confirm acknowledges an insufficient-stock warning
	Confirm bool `json:"confirm,omitempty"`
}

// ToInput converts to domain input.
func (r *LogWasteRequest) ToInput() waste.Input {
	return waste.Input{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Reason:    r.Reason,
		Note:      r.Note,
		Confirm:   r.Confirm,
	}
}
