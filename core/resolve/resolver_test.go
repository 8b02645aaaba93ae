// Package resolve - Resolver tests
package resolve

import (
	"testing"

	"github.com/shopspring/decimal"

	"baticost/core/catalog"
	"baticost/core/types"
	"baticost/internal/errors"
)

func baseInput() *types.ProjectInput {
	return &types.ProjectInput{
		ProjectType: types.ProjectConstruction,
		Surface:     120,
		ClientType:  types.ClientIndividual,
		Region:      "default",
		FinishLevel: "standard",
		Precision:   types.PrecisionQuick,
		Selections:  map[string]string{},
	}
}

func findItem(items []types.ResolvedLineItem, category string) (types.ResolvedLineItem, bool) {
	for _, it := range items {
		if it.Category == category {
			return it, true
		}
	}
	return types.ResolvedLineItem{}, false
}

func TestBaseLineIsAlwaysFirst(t *testing.T) {
	items, err := Resolve(baseInput(), catalog.Builtin())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected only the base line, got %d items", len(items))
	}
	it := items[0]
	if it.Category != "base" || it.Option != "construction" {
		t.Fatalf("first line = %s.%s, want base.construction", it.Category, it.Option)
	}
	want := decimal.NewFromInt(1700).Mul(decimal.NewFromInt(120))
	if !it.Amount.Equal(want) {
		t.Errorf("base amount = %s, want %s", it.Amount, want)
	}
}

func TestAreaPricedCategoryScalesWithSurface(t *testing.T) {
	in := baseInput()
	in.Selections["heating"] = "heat_pump"

	items, err := Resolve(in, catalog.Builtin())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	it, ok := findItem(items, "heating")
	if !ok {
		t.Fatal("heating line missing")
	}
	want := decimal.NewFromInt(110).Mul(decimal.NewFromInt(120))
	if !it.Amount.Equal(want) {
		t.Errorf("heating amount = %s, want %s", it.Amount, want)
	}
	if !it.Quantity.Equal(decimal.NewFromInt(120)) {
		t.Errorf("heating quantity = %s, want the surface", it.Quantity)
	}
}

func TestFixedTierIgnoresSurface(t *testing.T) {
	small := baseInput()
	small.Surface = 50
	small.Selections["kitchen"] = "premium"

	large := baseInput()
	large.Surface = 500
	large.Selections["kitchen"] = "premium"

	cat := catalog.Builtin()
	itemsSmall, err := Resolve(small, cat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	itemsLarge, err := Resolve(large, cat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	a, _ := findItem(itemsSmall, "kitchen")
	b, _ := findItem(itemsLarge, "kitchen")
	if !a.Amount.Equal(b.Amount) {
		t.Errorf("fixed tier amount changed with surface: %s vs %s", a.Amount, b.Amount)
	}
	if !a.Turnkey {
		t.Error("kitchen line must carry the turnkey flag")
	}
}

func TestFacadeUsesBaseRateTimesMultiplier(t *testing.T) {
	in := baseInput()
	in.Selections["facade"] = "stone_cladding"

	cat := catalog.Builtin()
	items, err := Resolve(in, cat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	it, ok := findItem(items, "facade")
	if !ok {
		t.Fatal("facade line missing")
	}

	area, err := FacadeArea(decimal.NewFromInt(120), cat.Facade.WallHeight)
	if err != nil {
		t.Fatalf("FacadeArea failed: %v", err)
	}
	// base 60 EUR/m² × multiplier 2.2, applied to the derived facade area
	wantUnit := decimal.NewFromInt(60).Mul(decimal.RequireFromString("2.2"))
	if !it.UnitPrice.Equal(wantUnit) {
		t.Errorf("facade unit price = %s, want %s", it.UnitPrice, wantUnit)
	}
	if !it.Quantity.Equal(area) {
		t.Errorf("facade quantity = %s, want facade area %s", it.Quantity, area)
	}
	if !it.Amount.Equal(wantUnit.Mul(area)) {
		t.Errorf("facade amount = %s", it.Amount)
	}
}

func TestNoSelectionMeansNoLine(t *testing.T) {
	in := baseInput()
	in.Selections["roofing"] = "tiles"

	items, err := Resolve(in, catalog.Builtin())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	for _, it := range items {
		if it.Amount.Sign() == 0 {
			t.Errorf("zero-amount line emitted for %s.%s", it.Category, it.Option)
		}
	}
	if _, ok := findItem(items, "heating"); ok {
		t.Error("unselected category produced a line item")
	}
}

func TestAddOnsAreFlatPriced(t *testing.T) {
	in := baseInput()
	in.AddOns = []string{"permits_paperwork", "terrace"}

	items, err := Resolve(in, catalog.Builtin())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	var addOnTotal decimal.Decimal
	for _, it := range items {
		if it.Category == "add_on" {
			if !it.Quantity.Equal(decimal.NewFromInt(1)) {
				t.Errorf("add-on %s has quantity %s, want 1", it.Option, it.Quantity)
			}
			addOnTotal = addOnTotal.Add(it.Amount)
		}
	}
	want := decimal.NewFromInt(3500 + 9000)
	if !addOnTotal.Equal(want) {
		t.Errorf("add-on total = %s, want %s", addOnTotal, want)
	}
}

func TestPricingGapFailsFast(t *testing.T) {
	// A catalog missing a price for a validated selection is a
	// data-integrity bug: fail fast, never a silent zero.
	cat := catalog.Builtin()
	delete(cat.BasePrices, types.ProjectConstruction)

	_, err := Resolve(baseInput(), cat)
	if err == nil {
		t.Fatal("expected a pricing gap error")
	}
	if !errors.IsType(err, errors.TypePricingGap) {
		t.Fatalf("expected %s, got %v", errors.TypePricingGap, err)
	}
}
