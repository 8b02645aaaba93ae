// Package catalog - Builtin authoritative catalog
// This is the source of truth for default pricing. File-based catalogs
// (see loader.go) replace it wholesale, never partially.
package catalog

import (
	"github.com/shopspring/decimal"

	"baticost/core/types"
)

// eur builds a whole-euro price
func eur(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// coef builds a coefficient from its canonical string form so that builtin
// and file-loaded catalogs compare equal digit for digit
func coef(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// BuiltinVersion identifies the builtin catalog snapshot
const BuiltinVersion = "2026.1-builtin"

// Builtin returns the builtin catalog. Every call returns a fresh value so a
// caller can never mutate the tables another caller sees.
func Builtin() *Catalog {
	c := &Catalog{
		Version:  BuiltinVersion,
		Currency: types.CurrencyEUR,

		BasePrices: map[types.ProjectType]decimal.Decimal{
			types.ProjectConstruction: eur(1700),
			types.ProjectRenovation:   eur(1100),
			types.ProjectExtension:    eur(1900),
			types.ProjectOptimization: eur(800),
			types.ProjectDivision:     eur(600),
			types.ProjectDesign:       eur(250),
			types.ProjectElevation:    eur(2100),
		},

		Categories: []Category{
			{
				Name: "structure",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "concrete_blocks", Label: "Concrete block masonry", Price: eur(240)},
					{Code: "brick", Label: "Brick masonry", Price: eur(280)},
					{Code: "wood_frame", Label: "Timber frame", Price: eur(260)},
					{Code: "stone", Label: "Load-bearing stone", Price: eur(350)},
					{Code: "metal_frame", Label: "Steel frame", Price: eur(310)},
				},
			},
			{
				Name: "frame",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "traditional", Label: "Traditional roof frame", Price: eur(95)},
					{Code: "industrial", Label: "Industrial trusses", Price: eur(70)},
					{Code: "flat_roof", Label: "Flat roof deck", Price: eur(110)},
				},
			},
			{
				Name: "attic",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "lost", Label: "Lost attic", Price: eur(30)},
					{Code: "convertible", Label: "Convertible attic", Price: eur(55)},
					{Code: "converted", Label: "Converted attic", Price: eur(90)},
				},
			},
			{
				Name: "roofing",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "tiles", Label: "Clay tiles", Price: eur(85)},
					{Code: "slate", Label: "Natural slate", Price: eur(130)},
					{Code: "zinc", Label: "Zinc standing seam", Price: eur(110)},
					{Code: "flat_membrane", Label: "Flat roof membrane", Price: eur(95)},
					{Code: "green_roof", Label: "Vegetated roof", Price: eur(150)},
				},
			},
			{
				Name: "insulation",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "standard", Label: "Regulatory minimum", Price: eur(45)},
					{Code: "reinforced", Label: "Reinforced insulation", Price: eur(65)},
					{Code: "passive", Label: "Passive-house grade", Price: eur(95)},
				},
			},
			{
				// Facade options are multipliers over Facade.BaseRate, not
				// prices. The resolver applies them to the derived facade
				// area; the coefficient composer never sees them.
				Name: "facade",
				Kind: KindMultiplier,
				Options: []Option{
					{Code: "paint", Label: "Paint finish", Price: coef("0.8")},
					{Code: "plaster", Label: "Mineral plaster", Price: coef("1.0")},
					{Code: "wood_cladding", Label: "Wood cladding", Price: coef("1.6")},
					{Code: "stone_cladding", Label: "Stone cladding", Price: coef("2.2")},
					{Code: "composite_panels", Label: "Composite panels", Price: coef("1.8")},
				},
			},
			{
				Name: "exterior_joinery",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "pvc", Label: "PVC windows and doors", Price: eur(55)},
					{Code: "aluminium", Label: "Aluminium joinery", Price: eur(85)},
					{Code: "wood", Label: "Wood joinery", Price: eur(95)},
					{Code: "wood_aluminium", Label: "Mixed wood-aluminium", Price: eur(105)},
				},
			},
			{
				Name: "electrical",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "basic", Label: "Code-compliant wiring", Price: eur(75)},
					{Code: "standard", Label: "Standard fit-out", Price: eur(95)},
					{Code: "domotics", Label: "Home automation", Price: eur(140)},
				},
			},
			{
				Name: "plumbing",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "basic", Label: "Basic supply and drainage", Price: eur(60)},
					{Code: "standard", Label: "Standard fit-out", Price: eur(85)},
					{Code: "premium", Label: "Premium fit-out", Price: eur(120)},
				},
			},
			{
				Name: "heating",
				Kind: KindPerM2,
				Options: []Option{
					{Code: "electric", Label: "Electric radiators", Price: eur(45)},
					{Code: "gas_condensing", Label: "Gas condensing boiler", Price: eur(70)},
					{Code: "heat_pump", Label: "Air-water heat pump", Price: eur(110)},
					{Code: "underfloor", Label: "Underfloor heating", Price: eur(135)},
					{Code: "pellet_stove", Label: "Pellet stove", Price: eur(90)},
				},
			},
			{
				// Turnkey package prices already reflect the finish level;
				// the finish coefficient must not rescale them.
				Name:    "kitchen",
				Kind:    KindFixed,
				Turnkey: true,
				Options: []Option{
					{Code: "base", Label: "Base kitchen package", Price: eur(8000)},
					{Code: "comfort", Label: "Comfort kitchen package", Price: eur(15000)},
					{Code: "premium", Label: "Premium kitchen package", Price: eur(25000)},
				},
			},
			{
				Name:    "bathroom",
				Kind:    KindFixed,
				Turnkey: true,
				Options: []Option{
					{Code: "base", Label: "Base bathroom package", Price: eur(4500)},
					{Code: "comfort", Label: "Comfort bathroom package", Price: eur(9000)},
					{Code: "premium", Label: "Premium bathroom package", Price: eur(16000)},
				},
			},
		},

		Facade: FacadeTable{
			BaseRate:   eur(60),
			WallHeight: coef("2.7"),
		},

		AddOns: []Option{
			{Code: "demolition", Label: "Demolition of existing structure", Price: eur(15000)},
			{Code: "fence", Label: "Perimeter fence", Price: eur(7000)},
			{Code: "garage", Label: "Detached garage", Price: eur(18000)},
			{Code: "landscaping", Label: "Landscaping", Price: eur(12000)},
			{Code: "permits_paperwork", Label: "Permit application handling", Price: eur(3500)},
			{Code: "solar_panels", Label: "Rooftop solar array", Price: eur(16000)},
			{Code: "swimming_pool", Label: "In-ground swimming pool", Price: eur(35000)},
			{Code: "terrace", Label: "Terrace", Price: eur(9000)},
		},

		ClientMultipliers: []Multiplier{
			{Code: "individual", Label: "Individual", Value: coef("1.0")},
			{Code: "professional", Label: "Professional", Value: coef("1.2")},
			{Code: "investor", Label: "Investor", Value: coef("1.1")},
		},

		ActivityMultipliers: []Multiplier{
			{Code: "offices", Label: "Offices", Value: coef("1.1")},
			{Code: "retail", Label: "Retail", Value: coef("1.15")},
			{Code: "hospitality", Label: "Hotels and restaurants", Value: coef("1.3")},
			{Code: "industrial", Label: "Industrial", Value: coef("0.95")},
			{Code: "medical", Label: "Medical practice", Value: coef("1.25")},
			{Code: "warehouse", Label: "Warehousing", Value: coef("0.9")},
		},

		PrecisionMultipliers: []Multiplier{
			{Code: "quick", Label: "Quick estimate", Value: coef("1.0")},
			{Code: "precise", Label: "Precise estimate", Value: coef("1.05")},
		},

		RegionCoefficients: []Multiplier{
			{Code: RegionDefault, Label: "National baseline", Value: coef("1.0")},
			{Code: "auvergne_rhone_alpes", Label: "Auvergne-Rhône-Alpes", Value: coef("1.05")},
			{Code: "bourgogne_franche_comte", Label: "Bourgogne-Franche-Comté", Value: coef("0.92")},
			{Code: "bretagne", Label: "Bretagne", Value: coef("0.95")},
			{Code: "centre_val_de_loire", Label: "Centre-Val de Loire", Value: coef("0.94")},
			{Code: "corse", Label: "Corse", Value: coef("1.18")},
			{Code: "grand_est", Label: "Grand Est", Value: coef("0.95")},
			{Code: "hauts_de_france", Label: "Hauts-de-France", Value: coef("0.92")},
			{Code: "ile_de_france", Label: "Île-de-France", Value: coef("1.25")},
			{Code: "normandie", Label: "Normandie", Value: coef("0.93")},
			{Code: "nouvelle_aquitaine", Label: "Nouvelle-Aquitaine", Value: coef("1.0")},
			{Code: "occitanie", Label: "Occitanie", Value: coef("0.98")},
			{Code: "pays_de_la_loire", Label: "Pays de la Loire", Value: coef("0.97")},
			{Code: "provence_alpes_cote_d_azur", Label: "Provence-Alpes-Côte d'Azur", Value: coef("1.12")},
		},

		FinishCoefficients: []Multiplier{
			{Code: "eco", Label: "Economy finish", Value: coef("0.9")},
			{Code: "standard", Label: "Standard finish", Value: coef("1.0")},
			{Code: "comfort", Label: "Comfort finish", Value: coef("1.15")},
			{Code: "luxury", Label: "Luxury finish", Value: coef("1.45")},
		},

		FinishAppliesToTurnkey: false,

		InflationRate: coef("0.02"),
		VATRate:       coef("0.2"),

		DevelopmentTax: DevelopmentTax{
			Rate:           coef("0.05"),
			StatutoryValue: eur(914),
			StatutoryBaseTypes: []types.ProjectType{
				types.ProjectConstruction,
				types.ProjectExtension,
				types.ProjectElevation,
			},
		},
	}

	return c
}
