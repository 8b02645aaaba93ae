// Package aggregate - Aggregator tests
// These tests pin the monetary invariants: line items sum to the subtotal
// and the grand total equals its components, bit-exactly after rounding.
package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"baticost/core/catalog"
	"baticost/core/coeff"
	"baticost/core/resolve"
	"baticost/core/types"
	"baticost/internal/errors"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func neutralInput(projectType types.ProjectType) *types.ProjectInput {
	return &types.ProjectInput{
		ProjectType: projectType,
		Surface:     120,
		ClientType:  types.ClientIndividual,
		Region:      "default",
		FinishLevel: "standard",
		Precision:   types.PrecisionQuick,
		Selections:  map[string]string{},
	}
}

func mustAggregate(t *testing.T, in *types.ProjectInput, cat *catalog.Catalog) *types.EstimationResult {
	t.Helper()
	items, err := resolve.Resolve(in, cat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	comp, err := coeff.Compose(in, cat, testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	result, err := Aggregate(items, comp, in, cat)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	return result
}

// TestConstructionBaseScenario pins the worked example: construction, 120 m²,
// individual, default region, standard finish, no optional selections.
func TestConstructionBaseScenario(t *testing.T) {
	result := mustAggregate(t, neutralInput(types.ProjectConstruction), catalog.Builtin())

	// subtotal = 1700 EUR/m² × 120 m² = 204000 EUR
	if result.SubtotalCents != 20400000 {
		t.Errorf("subtotal = %d cents, want 20400000", result.SubtotalCents)
	}
	// all coefficients neutral → after == subtotal
	if result.AfterCoefficientsCents != 20400000 {
		t.Errorf("after coefficients = %d cents, want 20400000", result.AfterCoefficientsCents)
	}
	// VAT = 204000 × 0.20 = 40800 EUR
	if result.VATCents != 4080000 {
		t.Errorf("VAT = %d cents, want 4080000", result.VATCents)
	}
	// statutory base: 120 m² × 914 EUR × 0.05 = 5484 EUR
	if result.DevelopmentTaxCents != 548400 {
		t.Errorf("development tax = %d cents, want 548400", result.DevelopmentTaxCents)
	}
	if result.GrandTotalCents != 25028400 {
		t.Errorf("grand total = %d cents, want 25028400", result.GrandTotalCents)
	}
}

func TestGrandTotalIdentityHolds(t *testing.T) {
	in := neutralInput(types.ProjectConstruction)
	in.ClientType = types.ClientInvestor
	in.FinishLevel = "comfort"
	in.Region = "ile_de_france"
	in.Selections = map[string]string{
		"roofing":  "slate",
		"heating":  "underfloor",
		"kitchen":  "comfort",
		"bathroom": "premium",
		"facade":   "wood_cladding",
	}
	in.AddOns = []string{"landscaping", "terrace"}

	result := mustAggregate(t, in, catalog.Builtin())

	var sum int64
	for _, it := range result.LineItems {
		sum += it.AmountCents
	}
	if sum != result.SubtotalCents {
		t.Errorf("line items sum to %d, subtotal is %d", sum, result.SubtotalCents)
	}
	if result.GrandTotalCents != result.AfterCoefficientsCents+result.VATCents+result.DevelopmentTaxCents {
		t.Errorf("grand total %d != %d + %d + %d", result.GrandTotalCents,
			result.AfterCoefficientsCents, result.VATCents, result.DevelopmentTaxCents)
	}
}

func TestRoundingResidualGoesToLargestLine(t *testing.T) {
	cat := catalog.Builtin()
	in := neutralInput(types.ProjectRenovation)
	zero := 0.0
	in.TaxRateOverride = &zero

	third := decimal.RequireFromString("33.335")
	items := []types.ResolvedLineItem{
		{Category: "base", Option: "renovation", UnitPrice: third, Quantity: decimal.NewFromInt(1), Amount: third},
		{Category: "roofing", Option: "tiles", UnitPrice: third, Quantity: decimal.NewFromInt(1), Amount: third},
		{Category: "heating", Option: "electric", UnitPrice: third, Quantity: decimal.NewFromInt(1), Amount: third},
	}

	comp, err := coeff.Compose(in, cat, testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	result, err := Aggregate(items, comp, in, cat)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// Each 33.335 rounds up to 33.34, but the exact subtotal 100.005
	// rounds to 100.01: one cent of residual must land on a single line,
	// never be dropped.
	if result.SubtotalCents != 10001 {
		t.Fatalf("subtotal = %d cents, want 10001", result.SubtotalCents)
	}
	var sum int64
	adjusted := 0
	for _, it := range result.LineItems {
		sum += it.AmountCents
		if it.AmountCents != 3334 {
			adjusted++
		}
	}
	if sum != result.SubtotalCents {
		t.Errorf("reconciled lines sum to %d, want %d", sum, result.SubtotalCents)
	}
	if adjusted != 1 {
		t.Errorf("%d lines were adjusted, want exactly 1", adjusted)
	}
}

func TestTurnkeyLinesSkipFinishCoefficient(t *testing.T) {
	cat := catalog.Builtin()

	in := neutralInput(types.ProjectRenovation)
	in.FinishLevel = "luxury"
	in.Selections = map[string]string{"kitchen": "base"}

	result := mustAggregate(t, in, cat)

	// base: 1100 × 120 = 132000, scaled by luxury 1.45 → 191400
	// kitchen: 8000, turnkey → finish coefficient does not apply
	const want = int64(19940000)
	if result.AfterCoefficientsCents != want {
		t.Errorf("after coefficients = %d cents, want %d", result.AfterCoefficientsCents, want)
	}
}

func TestDevelopmentTaxUsesAmountBaseForRenovation(t *testing.T) {
	result := mustAggregate(t, neutralInput(types.ProjectRenovation), catalog.Builtin())

	// renovation is not on the statutory list: tax = after × 0.05
	// after = 1100 × 120 = 132000 → tax 6600 EUR
	if result.DevelopmentTaxCents != 660000 {
		t.Errorf("development tax = %d cents, want 660000", result.DevelopmentTaxCents)
	}
}

func TestTaxRateOverrideReplacesCatalogRate(t *testing.T) {
	in := neutralInput(types.ProjectConstruction)
	override := 0.03
	in.TaxRateOverride = &override

	result := mustAggregate(t, in, catalog.Builtin())

	// 120 × 914 × 0.03 = 3290.40 EUR
	if result.DevelopmentTaxCents != 329040 {
		t.Errorf("development tax = %d cents, want 329040", result.DevelopmentTaxCents)
	}
}

func TestNegativeLineItemAborts(t *testing.T) {
	cat := catalog.Builtin()
	in := neutralInput(types.ProjectRenovation)

	comp, err := coeff.Compose(in, cat, testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	items := []types.ResolvedLineItem{
		{Category: "base", Option: "renovation", Amount: decimal.NewFromInt(-1)},
	}
	_, err = Aggregate(items, comp, in, cat)
	if err == nil {
		t.Fatal("expected a computation integrity error")
	}
	if !errors.IsType(err, errors.TypeIntegrity) {
		t.Fatalf("expected %s, got %v", errors.TypeIntegrity, err)
	}
}

func TestEmptyLineItemsAbort(t *testing.T) {
	cat := catalog.Builtin()
	in := neutralInput(types.ProjectRenovation)

	comp, err := coeff.Compose(in, cat, testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if _, err := Aggregate(nil, comp, in, cat); err == nil {
		t.Fatal("expected aggregation of zero line items to fail")
	}
}
