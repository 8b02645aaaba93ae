// Package catalog - HCL catalog loader
package catalog

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"baticost/core/types"
	"baticost/internal/errors"
)

// catalogFile mirrors the HCL catalog document schema
type catalogFile struct {
	Version       string  `hcl:"version"`
	Currency      string  `hcl:"currency"`
	InflationRate float64 `hcl:"inflation_rate"`
	VATRate       float64 `hcl:"vat_rate"`

	FinishAppliesToTurnkey *bool `hcl:"finish_applies_to_turnkey,optional"`

	BasePrices []basePriceBlock `hcl:"base_price,block"`
	Categories []categoryBlock  `hcl:"category,block"`
	Facade     *facadeBlock     `hcl:"facade,block"`
	AddOns     []optionBlock    `hcl:"add_on,block"`

	Clients     []multiplierBlock `hcl:"client,block"`
	Activities  []multiplierBlock `hcl:"activity,block"`
	Precisions  []multiplierBlock `hcl:"precision,block"`
	Regions     []multiplierBlock `hcl:"region,block"`
	Finishes    []multiplierBlock `hcl:"finish,block"`
	DevTax      *devTaxBlock      `hcl:"development_tax,block"`
}

type basePriceBlock struct {
	ProjectType string  `hcl:"project_type,label"`
	PerM2       float64 `hcl:"per_m2"`
}

type categoryBlock struct {
	Name    string        `hcl:"name,label"`
	Kind    string        `hcl:"kind"`
	Turnkey *bool         `hcl:"turnkey,optional"`
	Options []optionBlock `hcl:"option,block"`
}

type optionBlock struct {
	Code  string  `hcl:"code,label"`
	Label string  `hcl:"label,optional"`
	Price float64 `hcl:"price"`
}

type facadeBlock struct {
	BaseRate   float64 `hcl:"base_rate"`
	WallHeight float64 `hcl:"wall_height"`
}

type multiplierBlock struct {
	Code  string  `hcl:"code,label"`
	Label string  `hcl:"label,optional"`
	Value float64 `hcl:"value"`
}

type devTaxBlock struct {
	Rate               float64  `hcl:"rate"`
	StatutoryValue     float64  `hcl:"statutory_value"`
	StatutoryBaseTypes []string `hcl:"statutory_base_types"`
}

// LoadFile parses and validates an HCL catalog document. The returned catalog
// is fully validated; a document that fails validation never becomes visible.
func LoadFile(path string) (*Catalog, error) {
	var file catalogFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, errors.Catalog("failed to parse catalog file "+path, err)
	}

	cat, err := file.toCatalog()
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (f *catalogFile) toCatalog() (*Catalog, error) {
	c := &Catalog{
		Version:       f.Version,
		Currency:      types.Currency(f.Currency),
		InflationRate: decimal.NewFromFloat(f.InflationRate),
		VATRate:       decimal.NewFromFloat(f.VATRate),
		BasePrices:    make(map[types.ProjectType]decimal.Decimal, len(f.BasePrices)),
	}

	for _, b := range f.BasePrices {
		t := types.ProjectType(b.ProjectType)
		if !t.Known() {
			return nil, errors.Newf(errors.TypeCatalog, "base_price block for unknown project type %q", b.ProjectType)
		}
		c.BasePrices[t] = decimal.NewFromFloat(b.PerM2)
	}

	for _, b := range f.Categories {
		cat := Category{
			Name: b.Name,
			Kind: CategoryKind(b.Kind),
		}
		if b.Turnkey != nil {
			cat.Turnkey = *b.Turnkey
		}
		for _, o := range b.Options {
			cat.Options = append(cat.Options, Option{
				Code:  o.Code,
				Label: o.Label,
				Price: decimal.NewFromFloat(o.Price),
			})
		}
		c.Categories = append(c.Categories, cat)
	}

	if f.Facade != nil {
		c.Facade = FacadeTable{
			BaseRate:   decimal.NewFromFloat(f.Facade.BaseRate),
			WallHeight: decimal.NewFromFloat(f.Facade.WallHeight),
		}
	}

	for _, o := range f.AddOns {
		c.AddOns = append(c.AddOns, Option{
			Code:  o.Code,
			Label: o.Label,
			Price: decimal.NewFromFloat(o.Price),
		})
	}

	c.ClientMultipliers = toMultipliers(f.Clients)
	c.ActivityMultipliers = toMultipliers(f.Activities)
	c.PrecisionMultipliers = toMultipliers(f.Precisions)
	c.RegionCoefficients = toMultipliers(f.Regions)
	c.FinishCoefficients = toMultipliers(f.Finishes)

	if f.FinishAppliesToTurnkey != nil {
		c.FinishAppliesToTurnkey = *f.FinishAppliesToTurnkey
	}

	if f.DevTax == nil {
		return nil, errors.New(errors.TypeCatalog, "development_tax block is missing")
	}
	c.DevelopmentTax = DevelopmentTax{
		Rate:           decimal.NewFromFloat(f.DevTax.Rate),
		StatutoryValue: decimal.NewFromFloat(f.DevTax.StatutoryValue),
	}
	for _, s := range f.DevTax.StatutoryBaseTypes {
		t := types.ProjectType(s)
		if !t.Known() {
			return nil, errors.Newf(errors.TypeCatalog, "development_tax references unknown project type %q", s)
		}
		c.DevelopmentTax.StatutoryBaseTypes = append(c.DevelopmentTax.StatutoryBaseTypes, t)
	}

	return c, nil
}

func toMultipliers(blocks []multiplierBlock) []Multiplier {
	out := make([]Multiplier, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, Multiplier{
			Code:  b.Code,
			Label: b.Label,
			Value: decimal.NewFromFloat(b.Value),
		})
	}
	return out
}
