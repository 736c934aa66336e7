// Package documents holds what orders and purchase orders share: the
// priced line they are created from.
package documents

import (
	"context"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/security"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/pricing"
	"stockbook/internal/domain/store"
	"stockbook/pkg/logger"
)

// Number prefixes.
const (
	PrefixOrder         = "SO"
	PrefixPurchaseOrder = "PO"
)

// LineInput is the product, quantity and pricing part of a create request.
type LineInput struct {
	Ref            string
	ProductID      string
	Boxes          int64
	Pieces         int64
	DiscountPct    types.Percent
	OverridePrice  *types.Money
	OverrideReason string
}

// Validate checks what can be checked without the document.
func (in LineInput) Validate() error {
	if strings.TrimSpace(in.ProductID) == "" {
		return apperror.NewFieldValidation("productId", "product is required")
	}
	return pricing.ValidateOverride(in.OverridePrice, in.OverrideReason)
}

// Build resolves the product, prices the line and returns a numbered
// document header. It fails if the product is unknown or the line comes
// to zero pieces.
func Build(doc *store.Document, ids id.Source, actor security.Actor, prefix string, in LineInput) (entity.Document, error) {
	product, ok := doc.Product(in.ProductID)
	if !ok {
		return entity.Document{}, apperror.NewFieldValidation("productId", "product does not exist").
			WithDetail("product_id", in.ProductID)
	}

	qty, err := pricing.QuantityPieces(in.Boxes, in.Pieces, product.PiecesPerBox)
	if err != nil {
		return entity.Document{}, err
	}
	if qty <= 0 {
		return entity.Document{}, apperror.NewFieldValidation("quantity", "quantity must be greater than zero")
	}

	quote := pricing.ComputeUnitPrice(product.BasePrice, in.DiscountPct, in.OverridePrice)
	now := ids.Now()

	return entity.Document{
		ID:             ids.NewID(),
		Number:         doc.NextNumber(prefix, now),
		Ref:            strings.TrimSpace(in.Ref),
		ProductID:      product.ID,
		Boxes:          max(0, in.Boxes),
		Pieces:         max(0, in.Pieces),
		Quantity:       qty,
		Pricing:        quote.Snapshot(in.OverrideReason),
		UnitPriceFinal: quote.Final,
		TotalAmount:    quote.Total(qty),
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      actor.ID,
	}, nil
}

// Authorize is security.Require with a warning logged on denial.
func Authorize(ctx context.Context, actor security.Actor, operation string, actions ...security.Action) error {
	if err := security.Require(actor, actions...); err != nil {
		logger.Warn(ctx, "permission denied",
			"operation", operation,
			"actor_id", actor.ID,
			"role", actor.Role,
		)
		return err
	}
	return nil
}

// RequireParty rejects an empty customer or supplier name.
func RequireParty(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", apperror.NewFieldValidation(field, field+" is required")
	}
	return v, nil
}
