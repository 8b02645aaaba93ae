// Package types - Money helpers
package types

import "github.com/shopspring/decimal"

// RoundCents rounds a monetary amount to whole cents, half away from zero,
// and returns the value as integer cents. All engine amounts are
// non-negative, so half away from zero is round-half-up.
func RoundCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CentsToDecimal converts integer cents back to a decimal euro amount
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

// IsFinitePositive reports whether a decimal is a usable multiplier:
// strictly positive. Decimals cannot hold NaN or infinities, so positivity
// is the only coefficient check needed once float inputs are converted.
func IsFinitePositive(d decimal.Decimal) bool {
	return d.Sign() > 0
}
