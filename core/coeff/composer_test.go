// Package coeff - Composer tests
package coeff

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"baticost/core/catalog"
	"baticost/core/types"
	"baticost/internal/errors"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func individualInput() *types.ProjectInput {
	return &types.ProjectInput{
		ProjectType: types.ProjectConstruction,
		Surface:     120,
		ClientType:  types.ClientIndividual,
		Region:      "default",
		FinishLevel: "standard",
		Precision:   types.PrecisionQuick,
	}
}

func TestChainOrderIsFixed(t *testing.T) {
	comp, err := Compose(individualInput(), catalog.Builtin(), testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	want := []string{"client_type", "activity", "estimation_precision", "region", "finish_level"}
	if len(comp.Coefficients) != len(want) {
		t.Fatalf("chain has %d entries, want %d", len(comp.Coefficients), len(want))
	}
	for i, name := range want {
		if comp.Coefficients[i].Name != name {
			t.Errorf("chain[%d] = %q, want %q", i, comp.Coefficients[i].Name, name)
		}
	}
}

func TestProfessionalActivityChain(t *testing.T) {
	in := individualInput()
	in.ClientType = types.ClientProfessional
	in.Activity = "offices"

	comp, err := Compose(in, catalog.Builtin(), testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	product := comp.Product(false)
	want := decimal.RequireFromString("1.2").Mul(decimal.RequireFromString("1.1"))
	if !product.Equal(want) {
		t.Errorf("professional/offices product = %s, want %s", product, want)
	}
}

func TestActivityIsNeutralForNonProfessionals(t *testing.T) {
	comp, err := Compose(individualInput(), catalog.Builtin(), testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if !comp.Coefficients[1].Value.Equal(decimal.NewFromInt(1)) {
		t.Errorf("activity coefficient = %s, want 1 for individuals", comp.Coefficients[1].Value)
	}
}

func TestUnknownRegionUsesDefaultCoefficient(t *testing.T) {
	cat := catalog.Builtin()

	known := individualInput()
	unknown := individualInput()
	unknown.Region = "just_announced_region"

	a, err := Compose(known, cat, testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	b, err := Compose(unknown, cat, testNow)
	if err != nil {
		t.Fatalf("Compose must not fail on an unknown region: %v", err)
	}

	if !a.Product(false).Equal(b.Product(false)) {
		t.Errorf("unknown region product %s differs from default %s", b.Product(false), a.Product(false))
	}
}

func TestFinishCoefficientSkipsTurnkeyLines(t *testing.T) {
	in := individualInput()
	in.FinishLevel = "luxury"

	comp, err := Compose(in, catalog.Builtin(), testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	full := comp.Product(false)
	turnkey := comp.Product(true)
	luxury := decimal.RequireFromString("1.45")
	if !full.Div(turnkey).Round(6).Equal(luxury.Round(6)) {
		t.Errorf("turnkey product %s should exclude the finish coefficient (full %s)", turnkey, full)
	}
}

func TestInflationClampsPastDates(t *testing.T) {
	cat := catalog.Builtin()

	past := individualInput()
	past.TargetDate = testNow.AddDate(-2, 0, 0)

	none := individualInput()

	a, err := Compose(past, cat, testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	b, err := Compose(none, cat, testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	one := decimal.NewFromInt(1)
	if !a.InflationFactor.Equal(one) || !b.InflationFactor.Equal(one) {
		t.Errorf("past/absent target dates must apply no inflation, got %s and %s",
			a.InflationFactor, b.InflationFactor)
	}
}

func TestInflationGrowsWithHorizon(t *testing.T) {
	cat := catalog.Builtin()

	in := individualInput()
	in.TargetDate = testNow.AddDate(2, 0, 0)

	comp, err := Compose(in, cat, testNow)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Two years at 2% ≈ 1.0404
	want := decimal.RequireFromString("1.0404")
	diff := comp.InflationFactor.Sub(want).Abs()
	if diff.GreaterThan(decimal.RequireFromString("0.0001")) {
		t.Errorf("two-year inflation factor = %s, want ≈ %s", comp.InflationFactor, want)
	}
}

func TestZeroCoefficientAbortsComposition(t *testing.T) {
	// A zero coefficient in an (unvalidated) catalog must abort rather
	// than silently erase the whole estimate.
	cat := catalog.Builtin()
	cat.ClientMultipliers[0].Value = decimal.Zero

	_, err := Compose(individualInput(), cat, testNow)
	if err == nil {
		t.Fatal("expected a computation integrity error")
	}
	if !errors.IsType(err, errors.TypeIntegrity) {
		t.Fatalf("expected %s, got %v", errors.TypeIntegrity, err)
	}
}
