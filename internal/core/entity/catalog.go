// Package entity provides core domain entities.
package entity

import (
	"context"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without touching the store).
type Validatable interface {
	Validate(ctx context.Context) error
}

// Product is a catalog item. ID is the SKU.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`

	// PiecesPerBox converts boxes to pieces; always >= 1
	PiecesPerBox int64 `json:"piecesPerBox"`

	// BasePrice is the list price of one piece
	BasePrice types.Money `json:"basePrice"`
}

// Validate implements Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.ID) == "" {
		return apperror.NewFieldValidation("id", "SKU is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if p.PiecesPerBox < 1 {
		return apperror.NewFieldValidation("piecesPerBox", "pieces per box must be at least 1")
	}
	if p.BasePrice.IsNegative() {
		return apperror.NewFieldValidation("basePrice", "base price must not be negative")
	}
	return nil
}

var _ Validatable = (*Product)(nil)
