// Package aggregate - Subtotal, coefficient application, taxes and rounding
// The aggregator is the only place monetary figures are rounded. It refuses
// to return a result that violates its own invariants: line items sum to the
// subtotal and the grand total equals its three components, bit-exactly.
package aggregate

import (
	"github.com/shopspring/decimal"

	"baticost/core/catalog"
	"baticost/core/coeff"
	"baticost/core/types"
	"baticost/internal/errors"
)

// Aggregate combines resolved line items and the composed coefficients into
// the final estimation result. Pure: same inputs, same output. The Timeline
// field is left zero for the engine to fill.
func Aggregate(items []types.ResolvedLineItem, comp *coeff.Composition, in *types.ProjectInput, cat *catalog.Catalog) (*types.EstimationResult, error) {
	if len(items) == 0 {
		return nil, errors.Integrity("no line items to aggregate")
	}

	subtotalExact := decimal.Zero
	turnkeyExact := decimal.Zero
	for _, it := range items {
		if it.Amount.Sign() < 0 {
			return nil, errors.Integrity("line item %s.%s has negative amount %s", it.Category, it.Option, it.Amount)
		}
		subtotalExact = subtotalExact.Add(it.Amount)
		if it.Turnkey {
			turnkeyExact = turnkeyExact.Add(it.Amount)
		}
	}
	nonTurnkeyExact := subtotalExact.Sub(turnkeyExact)

	// Turnkey package prices are already finish-level-aware; they skip the
	// coefficients flagged as not applying to them but still follow the
	// rest of the chain and inflation.
	fullProduct := comp.Product(false)
	turnkeyProduct := comp.Product(true)
	if !types.IsFinitePositive(fullProduct) || !types.IsFinitePositive(turnkeyProduct) {
		return nil, errors.Integrity("composed coefficient product is not positive")
	}
	if !types.IsFinitePositive(comp.InflationFactor) {
		return nil, errors.Integrity("inflation factor %s is not positive", comp.InflationFactor)
	}

	afterExact := nonTurnkeyExact.Mul(fullProduct).
		Add(turnkeyExact.Mul(turnkeyProduct)).
		Mul(comp.InflationFactor)
	if afterExact.Sign() < 0 {
		return nil, errors.Integrity("amount after coefficients is negative: %s", afterExact)
	}

	vatExact := afterExact.Mul(cat.VATRate)

	taxRate := cat.DevelopmentTax.Rate
	if in.TaxRateOverride != nil {
		taxRate = decimal.NewFromFloat(*in.TaxRateOverride)
	}
	taxBase := afterExact
	if cat.DevelopmentTax.UsesStatutoryBase(in.ProjectType) {
		// Statutory assessment: flat per-m² value, independent of the
		// actual construction cost.
		taxBase = decimal.NewFromFloat(in.Surface).Mul(cat.DevelopmentTax.StatutoryValue)
	}
	taxExact := taxBase.Mul(taxRate)
	if taxExact.Sign() < 0 {
		return nil, errors.Integrity("development tax is negative: %s", taxExact)
	}

	lineCents, subtotalCents := reconcileLines(items, subtotalExact)

	afterCents := types.RoundCents(afterExact)
	vatCents := types.RoundCents(vatExact)
	taxCents := types.RoundCents(taxExact)
	grandCents := afterCents + vatCents + taxCents

	result := &types.EstimationResult{
		CatalogVersion:         cat.Version,
		Currency:               cat.Currency,
		LineItems:              lineCents,
		SubtotalCents:          subtotalCents,
		AppliedCoefficients:    comp.Coefficients,
		InflationFactor:        comp.InflationFactor,
		AfterCoefficientsCents: afterCents,
		VATCents:               vatCents,
		DevelopmentTaxCents:    taxCents,
		GrandTotalCents:        grandCents,
	}

	if err := checkInvariants(result); err != nil {
		return nil, err
	}
	return result, nil
}

// reconcileLines rounds every line item to cents and assigns any residual
// between the rounded lines and the rounded subtotal to the single largest
// line item. A cent is never silently dropped.
func reconcileLines(items []types.ResolvedLineItem, subtotalExact decimal.Decimal) ([]types.LineItemCents, int64) {
	subtotalCents := types.RoundCents(subtotalExact)

	out := make([]types.LineItemCents, len(items))
	var sum int64
	largest := 0
	for i, it := range items {
		cents := types.RoundCents(it.Amount)
		out[i] = types.LineItemCents{
			Category:       it.Category,
			Option:         it.Option,
			UnitPriceCents: types.RoundCents(it.UnitPrice),
			Quantity:       it.Quantity.String(),
			AmountCents:    cents,
			Turnkey:        it.Turnkey,
			Formula:        it.Formula,
		}
		sum += cents
		if cents > out[largest].AmountCents {
			largest = i
		}
	}

	if residual := subtotalCents - sum; residual != 0 {
		out[largest].AmountCents += residual
	}
	return out, subtotalCents
}

func checkInvariants(r *types.EstimationResult) error {
	var sum int64
	for _, it := range r.LineItems {
		sum += it.AmountCents
	}
	if sum != r.SubtotalCents {
		return errors.Integrity("line items sum to %d cents but subtotal is %d cents", sum, r.SubtotalCents)
	}
	if r.GrandTotalCents != r.AfterCoefficientsCents+r.VATCents+r.DevelopmentTaxCents {
		return errors.Integrity("grand total %d does not equal %d + %d + %d",
			r.GrandTotalCents, r.AfterCoefficientsCents, r.VATCents, r.DevelopmentTaxCents)
	}
	return nil
}
