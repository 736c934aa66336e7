// Package pricing computes unit prices from a base price, a discount
// percentage and an optional override.
package pricing

import (
	"math"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
)

// Quote is the result of pricing one unit.
type Quote struct {
	Base        types.Money
	DiscountPct types.Percent
	Discounted  types.Money
	Final       types.Money

	// Override is set only when an effective (non-negative) override was applied
	Override *types.Money
}

// Overridden reports whether Final came from an override.
func (q Quote) Overridden() bool {
	return q.Override != nil
}

// Total returns Final multiplied by a piece count.
func (q Quote) Total(pieces int64) types.Money {
	return types.MulPieces(q.Final, pieces)
}

// EffectiveOverride returns override when it can replace the discounted
// price; a negative value is treated as no override.
func EffectiveOverride(override *types.Money) *types.Money {
	if override == nil || override.IsNegative() {
		return nil
	}
	v := *override
	return &v
}

// ComputeUnitPrice applies the clamped discount to base and then the override.
func ComputeUnitPrice(base types.Money, discountPct types.Percent, override *types.Money) Quote {
	pct := types.ClampPercent(discountPct)
	factor := types.Hundred().Sub(pct).Div(types.Hundred())
	discounted := base.Mul(factor)

	q := Quote{
		Base:        base,
		DiscountPct: pct,
		Discounted:  discounted,
		Final:       discounted,
	}
	if eff := EffectiveOverride(override); eff != nil {
		q.Override = eff
		q.Final = *eff
	}
	return q
}

// QuantityPieces converts boxes and loose pieces to pieces. Negative inputs
// count as zero. A total that does not fit in an int64 is a validation error
// on the quantity field.
func QuantityPieces(boxes, pieces, piecesPerBox int64) (int64, error) {
	boxes, pieces, piecesPerBox = max(0, boxes), max(0, pieces), max(0, piecesPerBox)
	if piecesPerBox > 0 && boxes > (math.MaxInt64-pieces)/piecesPerBox {
		return 0, apperror.NewFieldValidation("quantity", "quantity is too large").
			WithDetail("boxes", boxes).
			WithDetail("pieces", pieces)
	}
	return boxes*piecesPerBox + pieces, nil
}

// ValidateOverride rejects an effective override that has no reason.
func ValidateOverride(override *types.Money, reason string) error {
	if EffectiveOverride(override) != nil && strings.TrimSpace(reason) == "" {
		return apperror.NewFieldValidation("overrideReason", "override price requires a reason")
	}
	return nil
}

// Snapshot freezes q into the pricing record stored on an order.
func (q Quote) Snapshot(reason string) entity.Pricing {
	p := entity.Pricing{
		BasePrice:       q.Base,
		DiscountPct:     q.DiscountPct,
		DiscountedPrice: q.Discounted,
	}
	if q.Override != nil {
		p.OverridePrice = q.Override
		p.OverrideReason = strings.TrimSpace(reason)
	}
	return p
}
