// Package engine - End-to-end pipeline tests
package engine

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"baticost/core/catalog"
	"baticost/core/types"
	"baticost/internal/errors"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := catalog.NewStore(catalog.Builtin())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return NewWithClock(store, func() time.Time { return testNow })
}

func rawInput() *types.RawProjectInput {
	return &types.RawProjectInput{
		ProjectType: "construction",
		Surface:     120,
		ClientType:  "individual",
		Region:      "default",
		FinishLevel: "standard",
		Precision:   "quick",
		Selections: map[string]string{
			"roofing": "tiles",
			"kitchen": "base",
		},
		AddOns: []string{"terrace"},
	}
}

func TestEstimateIsDeterministic(t *testing.T) {
	e := newTestEngine(t)

	a, err := e.Estimate(rawInput())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	b, err := e.Estimate(rawInput())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	aj, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	bj, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !bytes.Equal(aj, bj) {
		t.Errorf("identical inputs produced different results:\n%s\n%s", aj, bj)
	}
}

func TestSubtotalIsMonotonicInSurface(t *testing.T) {
	e := newTestEngine(t)

	var prev int64 = -1
	for _, surface := range []float64{40, 90, 120, 350, 1200} {
		raw := rawInput()
		raw.Surface = surface
		result, err := e.Estimate(raw)
		if err != nil {
			t.Fatalf("Estimate failed at %g m²: %v", surface, err)
		}
		if result.SubtotalCents < prev {
			t.Errorf("subtotal decreased from %d to %d cents when surface grew to %g m²",
				prev, result.SubtotalCents, surface)
		}
		prev = result.SubtotalCents
	}
}

// TestProfessionalRatioScenario pins the worked example: the same project for
// a professional office client costs exactly 1.2 × 1.1 times the
// individual amount after coefficients.
func TestProfessionalRatioScenario(t *testing.T) {
	e := newTestEngine(t)

	individual := rawInput()
	individual.Selections = nil
	individual.AddOns = nil

	professional := rawInput()
	professional.Selections = nil
	professional.AddOns = nil
	professional.ClientType = "professional"
	professional.Activity = "offices"

	a, err := e.Estimate(individual)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	b, err := e.Estimate(professional)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	if a.SubtotalCents != b.SubtotalCents {
		t.Errorf("coefficients must not move the subtotal: %d vs %d", a.SubtotalCents, b.SubtotalCents)
	}

	// 1.2 × 1.1 = 1.32 exactly, and 204000 × 1.32 = 269280 EUR
	want := int64(26928000)
	if b.AfterCoefficientsCents != want {
		t.Errorf("professional amount = %d cents, want %d (1.32 × individual %d)",
			b.AfterCoefficientsCents, want, a.AfterCoefficientsCents)
	}
}

// TestKitchenTierDeltaScenario pins the worked example: two requests that
// differ only in the kitchen tier differ by the tier price delta scaled by
// the coefficients that apply to turnkey lines.
func TestKitchenTierDeltaScenario(t *testing.T) {
	e := newTestEngine(t)

	base := rawInput()
	base.ClientType = "professional"
	base.Activity = "offices"
	base.Selections = map[string]string{"kitchen": "base"}
	base.AddOns = nil

	premium := rawInput()
	premium.ClientType = "professional"
	premium.Activity = "offices"
	premium.Selections = map[string]string{"kitchen": "premium"}
	premium.AddOns = nil

	a, err := e.Estimate(base)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	b, err := e.Estimate(premium)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	// tier delta 25000 − 8000 = 17000 EUR, scaled by 1.32 → 22440 EUR,
	// plus VAT at 20% → 26928 EUR. The statutory development tax does not
	// depend on the kitchen.
	wantAfterDelta := int64(2244000)
	wantGrandDelta := int64(2692800)
	if d := b.AfterCoefficientsCents - a.AfterCoefficientsCents; d != wantAfterDelta {
		t.Errorf("after-coefficients delta = %d cents, want %d", d, wantAfterDelta)
	}
	if d := b.GrandTotalCents - a.GrandTotalCents; d != wantGrandDelta {
		t.Errorf("grand total delta = %d cents, want %d", d, wantGrandDelta)
	}
}

func TestValidationErrorsReachTheCaller(t *testing.T) {
	e := newTestEngine(t)

	raw := rawInput()
	raw.Surface = -10
	raw.FinishLevel = "imaginary"

	_, err := e.Estimate(raw)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	verr, ok := err.(*errors.ValidationErrors)
	if !ok {
		t.Fatalf("expected *errors.ValidationErrors, got %T", err)
	}
	if len(verr.Fields) < 2 {
		t.Errorf("expected both offending fields, got %v", verr.Fields)
	}
}

func TestTimelineIsIndependentOfPrices(t *testing.T) {
	store, err := catalog.NewStore(catalog.Builtin())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	e := NewWithClock(store, func() time.Time { return testNow })

	before, err := e.Estimate(rawInput())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	// Double every base price and re-estimate: money moves, months do not.
	expensive := catalog.Builtin()
	expensive.Version = "expensive"
	for k, v := range expensive.BasePrices {
		expensive.BasePrices[k] = v.Mul(decimal.NewFromInt(2))
	}
	if err := store.Swap(expensive); err != nil {
		t.Fatalf("Swap failed: %v", err)
	}

	after, err := e.Estimate(rawInput())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	if after.SubtotalCents == before.SubtotalCents {
		t.Error("price change did not affect the subtotal")
	}
	if after.Timeline != before.Timeline {
		t.Errorf("price change moved the timeline: %+v vs %+v", before.Timeline, after.Timeline)
	}
}

func TestEstimateUsesCurrentSnapshotPerRequest(t *testing.T) {
	store, err := catalog.NewStore(catalog.Builtin())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	e := NewWithClock(store, func() time.Time { return testNow })

	a, err := e.Estimate(rawInput())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if a.CatalogVersion != catalog.BuiltinVersion {
		t.Errorf("catalog version = %q", a.CatalogVersion)
	}

	next := catalog.Builtin()
	next.Version = "v2"
	if err := store.Swap(next); err != nil {
		t.Fatalf("Swap failed: %v", err)
	}

	b, err := e.Estimate(rawInput())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if b.CatalogVersion != "v2" {
		t.Errorf("estimate after swap priced against %q, want v2", b.CatalogVersion)
	}
}
