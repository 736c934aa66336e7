// Package types provides common value types shared across the ledger.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Percent is a percentage in the 0..100 range, also kept as a decimal.
type Percent = decimal.Decimal

var hundred = decimal.NewFromInt(100)

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Hundred returns the decimal constant 100.
func Hundred() decimal.Decimal {
	return hundred
}

// ClampPercent limits p to the closed range [0, 100].
func ClampPercent(p Percent) Percent {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// MulPieces multiplies a unit price by a piece count.
func MulPieces(unit Money, pieces int64) Money {
	return unit.Mul(decimal.NewFromInt(pieces))
}
