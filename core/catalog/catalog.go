// Package catalog - Versioned, read-only pricing tables
// The catalog is the single source of truth for every price and coefficient
// the engine uses. It is loaded once (or hot-swapped whole) and never mutated.
package catalog

import (
	"github.com/shopspring/decimal"

	"baticost/core/types"
	"baticost/internal/errors"
)

// CategoryKind describes how a category's options are priced
type CategoryKind string

const (
	// KindPerM2 prices scale with the floor surface
	KindPerM2 CategoryKind = "per_m2"

	// KindFixed prices are flat package tiers, independent of surface
	KindFixed CategoryKind = "fixed"

	// KindMultiplier options are multipliers over the category base rate
	// (facade); the resolver prices these, never the coefficient composer
	KindMultiplier CategoryKind = "multiplier"
)

// Option is one selectable entry of a category table
type Option struct {
	Code  string
	Label string

	// Price is EUR/m² for per_m2 categories, flat EUR for fixed categories,
	// and a dimensionless multiplier for multiplier categories
	Price decimal.Decimal
}

// Category is one construction cost dimension with a closed option set
type Category struct {
	Name    string
	Kind    CategoryKind
	Options []Option

	// Turnkey marks fixed-tier packages whose price is already
	// finish-level-aware
	Turnkey bool
}

// Option returns the option with the given code
func (c *Category) Option(code string) (Option, bool) {
	for _, o := range c.Options {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// Multiplier is one named coefficient table entry
type Multiplier struct {
	Code  string
	Label string
	Value decimal.Decimal
}

// FacadeTable holds the facade special case: options are multipliers over an
// explicit base rate, applied to a facade area derived from the floor surface
// via a fixed shape assumption (square footprint, one storey).
type FacadeTable struct {
	// BaseRate is EUR per m² of facade surface
	BaseRate decimal.Decimal

	// WallHeight is the assumed wall height in metres
	WallHeight decimal.Decimal
}

// DevelopmentTax holds the development-tax parameters
type DevelopmentTax struct {
	// Rate is the default tax rate; callers may override it per request
	Rate decimal.Decimal

	// StatutoryValue is the flat per-m² assessment value used for project
	// types taxed on the statutory base
	StatutoryValue decimal.Decimal

	// StatutoryBaseTypes lists project types assessed on
	// surface × StatutoryValue instead of the amount after coefficients
	StatutoryBaseTypes []types.ProjectType
}

// UsesStatutoryBase reports whether the project type is assessed on the
// statutory base
func (d *DevelopmentTax) UsesStatutoryBase(t types.ProjectType) bool {
	for _, v := range d.StatutoryBaseTypes {
		if v == t {
			return true
		}
	}
	return false
}

// RegionDefault is the region code every catalog must define; unknown
// region codes fall back to it instead of failing.
const RegionDefault = "default"

// Catalog is one immutable snapshot of all pricing tables.
type Catalog struct {
	Version  string
	Currency types.Currency

	// BasePrices is EUR/m² by project type; priced as the first line item
	BasePrices map[types.ProjectType]decimal.Decimal

	// Categories is the ordered list of construction sub-category tables
	Categories []Category

	// Facade parameterizes the multiplier-priced facade category
	Facade FacadeTable

	// AddOns are flat-priced one-off services, no quantity scaling
	AddOns []Option

	// Coefficient tables, in application order
	ClientMultipliers    []Multiplier
	ActivityMultipliers  []Multiplier
	PrecisionMultipliers []Multiplier
	RegionCoefficients   []Multiplier
	FinishCoefficients   []Multiplier

	// FinishAppliesToTurnkey is false when turnkey package prices are
	// already finish-level-aware; the rule is table-driven so new fixed-tier
	// categories inherit it
	FinishAppliesToTurnkey bool

	// InflationRate is the fixed annual inflation rate
	InflationRate decimal.Decimal

	// VATRate is the value-added tax rate
	VATRate decimal.Decimal

	// DevelopmentTax holds the development-tax parameters
	DevelopmentTax DevelopmentTax
}

// Category returns the category table with the given name
func (c *Catalog) Category(name string) (*Category, bool) {
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// AddOn returns the add-on service with the given code
func (c *Catalog) AddOn(code string) (Option, bool) {
	for _, o := range c.AddOns {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// BasePrice returns the per-m² base price for a project type
func (c *Catalog) BasePrice(t types.ProjectType) (decimal.Decimal, bool) {
	p, ok := c.BasePrices[t]
	return p, ok
}

// RegionCoefficient returns the coefficient for a region code, falling back
// to the "default" entry for unknown codes. New regions appear in content
// before the catalog is updated, so this is never a hard failure.
func (c *Catalog) RegionCoefficient(code string) Multiplier {
	if m, ok := findMultiplier(c.RegionCoefficients, code); ok {
		return m
	}
	m, _ := findMultiplier(c.RegionCoefficients, RegionDefault)
	return m
}

// ClientMultiplier returns the client-type multiplier
func (c *Catalog) ClientMultiplier(t types.ClientType) (Multiplier, bool) {
	return findMultiplier(c.ClientMultipliers, string(t))
}

// ActivityMultiplier returns the professional-activity multiplier
func (c *Catalog) ActivityMultiplier(code string) (Multiplier, bool) {
	return findMultiplier(c.ActivityMultipliers, code)
}

// PrecisionMultiplier returns the estimation-precision multiplier
func (c *Catalog) PrecisionMultiplier(p types.Precision) (Multiplier, bool) {
	return findMultiplier(c.PrecisionMultipliers, string(p))
}

// FinishCoefficient returns the finish-level coefficient
func (c *Catalog) FinishCoefficient(code string) (Multiplier, bool) {
	return findMultiplier(c.FinishCoefficients, code)
}

func findMultiplier(table []Multiplier, code string) (Multiplier, bool) {
	for _, m := range table {
		if m.Code == code {
			return m, true
		}
	}
	return Multiplier{}, false
}

// Validate checks the catalog invariants at load time. A catalog that fails
// validation must never become visible to consumers: a zero coefficient would
// silently erase a cost category and a missing price would surface as a
// pricing gap at request time.
func (c *Catalog) Validate() error {
	if c.Version == "" {
		return errors.New(errors.TypeCatalog, "catalog version is empty")
	}
	if c.Currency == "" {
		return errors.New(errors.TypeCatalog, "catalog currency is empty")
	}

	if len(c.BasePrices) == 0 {
		return errors.New(errors.TypeCatalog, "base price table is empty")
	}
	for _, t := range types.AllProjectTypes {
		p, ok := c.BasePrices[t]
		if !ok {
			return errors.Newf(errors.TypeCatalog, "base price missing for project type %q", t)
		}
		if err := checkPrice("base_price."+string(t), p); err != nil {
			return err
		}
	}

	if len(c.Categories) == 0 {
		return errors.New(errors.TypeCatalog, "category tables are empty")
	}
	seen := map[string]bool{}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return errors.New(errors.TypeCatalog, "category with empty name")
		}
		if seen[cat.Name] {
			return errors.Newf(errors.TypeCatalog, "duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
		if len(cat.Options) == 0 {
			return errors.Newf(errors.TypeCatalog, "category %q has no options", cat.Name)
		}
		switch cat.Kind {
		case KindPerM2, KindFixed:
			for _, o := range cat.Options {
				if err := checkPrice(cat.Name+"."+o.Code, o.Price); err != nil {
					return err
				}
			}
		case KindMultiplier:
			for _, o := range cat.Options {
				if err := checkMultiplier(cat.Name+"."+o.Code, o.Price); err != nil {
					return err
				}
			}
		default:
			return errors.Newf(errors.TypeCatalog, "category %q has unknown kind %q", cat.Name, cat.Kind)
		}
		if cat.Kind == KindMultiplier && cat.Turnkey {
			return errors.Newf(errors.TypeCatalog, "category %q cannot be both multiplier-priced and turnkey", cat.Name)
		}
	}

	if hasMultiplierCategory(c.Categories) {
		if err := checkPrice("facade.base_rate", c.Facade.BaseRate); err != nil {
			return err
		}
		if c.Facade.BaseRate.Sign() == 0 {
			return errors.New(errors.TypeCatalog, "facade.base_rate is zero")
		}
		if c.Facade.WallHeight.Sign() <= 0 {
			return errors.New(errors.TypeCatalog, "facade.wall_height must be positive")
		}
	}

	for _, o := range c.AddOns {
		if err := checkPrice("add_on."+o.Code, o.Price); err != nil {
			return err
		}
	}

	tables := []struct {
		name  string
		table []Multiplier
	}{
		{"client", c.ClientMultipliers},
		{"activity", c.ActivityMultipliers},
		{"precision", c.PrecisionMultipliers},
		{"region", c.RegionCoefficients},
		{"finish", c.FinishCoefficients},
	}
	for _, t := range tables {
		if len(t.table) == 0 {
			return errors.Newf(errors.TypeCatalog, "%s multiplier table is empty", t.name)
		}
		for _, m := range t.table {
			if err := checkMultiplier(t.name+"."+m.Code, m.Value); err != nil {
				return err
			}
		}
	}
	if _, ok := findMultiplier(c.RegionCoefficients, RegionDefault); !ok {
		return errors.Newf(errors.TypeCatalog, "region table has no %q entry", RegionDefault)
	}

	if c.InflationRate.Sign() < 0 || c.InflationRate.GreaterThan(decimal.NewFromFloat(0.5)) {
		return errors.Newf(errors.TypeCatalog, "inflation rate %s outside [0, 0.5]", c.InflationRate)
	}
	if c.VATRate.Sign() < 0 || c.VATRate.GreaterThan(decimal.NewFromInt(1)) {
		return errors.Newf(errors.TypeCatalog, "VAT rate %s outside [0, 1]", c.VATRate)
	}
	if c.DevelopmentTax.Rate.Sign() < 0 || c.DevelopmentTax.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return errors.Newf(errors.TypeCatalog, "development tax rate %s outside [0, 1]", c.DevelopmentTax.Rate)
	}
	if len(c.DevelopmentTax.StatutoryBaseTypes) > 0 {
		if err := checkPrice("development_tax.statutory_value", c.DevelopmentTax.StatutoryValue); err != nil {
			return err
		}
	}

	return nil
}

func hasMultiplierCategory(cats []Category) bool {
	for _, c := range cats {
		if c.Kind == KindMultiplier {
			return true
		}
	}
	return false
}

// checkPrice enforces the price invariant: non-negative, whole euros
func checkPrice(name string, p decimal.Decimal) error {
	if p.Sign() < 0 {
		return errors.Newf(errors.TypeCatalog, "price %s is negative: %s", name, p)
	}
	if !p.Equal(p.Truncate(0)) {
		return errors.Newf(errors.TypeCatalog, "price %s is not a whole currency unit: %s", name, p)
	}
	return nil
}

// checkMultiplier enforces the coefficient invariant: strictly positive
func checkMultiplier(name string, v decimal.Decimal) error {
	if v.Sign() <= 0 {
		return errors.Newf(errors.TypeCatalog, "multiplier %s is not positive: %s", name, v)
	}
	return nil
}
