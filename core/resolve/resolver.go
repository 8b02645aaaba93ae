// Package resolve - Component cost resolution
// One resolver per pricing shape: area-priced categories, fixed-tier
// packages, the multiplier-priced facade, and flat add-on services. Every
// line item carries the exact table lookup it came from.
package resolve

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"baticost/core/catalog"
	"baticost/core/types"
	"baticost/internal/errors"
)

// Resolve produces the ordered list of line items for a validated input.
// The base price line comes first, then catalog categories in table order,
// then add-ons in code order. Categories without a selection contribute no
// line item. A selection that cannot be resolved to a price is a
// data-integrity bug and fails fast; it is never defaulted to zero.
func Resolve(in *types.ProjectInput, cat *catalog.Catalog) ([]types.ResolvedLineItem, error) {
	surface := decimal.NewFromFloat(in.Surface)

	basePrice, ok := cat.BasePrice(in.ProjectType)
	if !ok {
		return nil, errors.PricingGap("base", string(in.ProjectType))
	}

	items := []types.ResolvedLineItem{{
		Category:  "base",
		Option:    string(in.ProjectType),
		UnitPrice: basePrice,
		Quantity:  surface,
		Amount:    basePrice.Mul(surface),
		Formula:   fmt.Sprintf("base_price(%s) %s EUR/m² × %s m²", in.ProjectType, basePrice, surface),
	}}

	for i := range cat.Categories {
		c := &cat.Categories[i]
		code, selected := in.Selections[c.Name]
		if !selected {
			continue
		}
		opt, ok := c.Option(code)
		if !ok {
			// Validated selections should always resolve; a miss here means
			// the option enumeration and the pricing table diverged.
			return nil, errors.PricingGap(c.Name, code)
		}

		item, err := resolveOption(c, opt, surface, cat)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	for _, code := range in.AddOns {
		opt, ok := cat.AddOn(code)
		if !ok {
			return nil, errors.PricingGap("add_on", code)
		}
		items = append(items, types.ResolvedLineItem{
			Category:  "add_on",
			Option:    opt.Code,
			UnitPrice: opt.Price,
			Quantity:  decimal.NewFromInt(1),
			Amount:    opt.Price,
			Formula:   fmt.Sprintf("add_on(%s) flat %s EUR", opt.Code, opt.Price),
		})
	}

	return items, nil
}

func resolveOption(c *catalog.Category, opt catalog.Option, surface decimal.Decimal, cat *catalog.Catalog) (types.ResolvedLineItem, error) {
	switch c.Kind {
	case catalog.KindPerM2:
		return types.ResolvedLineItem{
			Category:  c.Name,
			Option:    opt.Code,
			UnitPrice: opt.Price,
			Quantity:  surface,
			Amount:    opt.Price.Mul(surface),
			Formula:   fmt.Sprintf("%s(%s) %s EUR/m² × %s m²", c.Name, opt.Code, opt.Price, surface),
		}, nil

	case catalog.KindFixed:
		return types.ResolvedLineItem{
			Category:  c.Name,
			Option:    opt.Code,
			UnitPrice: opt.Price,
			Quantity:  decimal.NewFromInt(1),
			Amount:    opt.Price,
			Turnkey:   c.Turnkey,
			Formula:   fmt.Sprintf("%s(%s) fixed tier %s EUR", c.Name, opt.Code, opt.Price),
		}, nil

	case catalog.KindMultiplier:
		// The facade table stores multipliers, not prices. The effective
		// unit price is base rate × option multiplier, applied to the facade
		// area. Pricing it here keeps the multiplier out of the coefficient
		// chain, so it can never be applied twice.
		area, err := FacadeArea(surface, cat.Facade.WallHeight)
		if err != nil {
			return types.ResolvedLineItem{}, err
		}
		unit := cat.Facade.BaseRate.Mul(opt.Price)
		return types.ResolvedLineItem{
			Category:  c.Name,
			Option:    opt.Code,
			UnitPrice: unit,
			Quantity:  area,
			Amount:    unit.Mul(area),
			Formula: fmt.Sprintf("%s(%s) base %s EUR/m² × %s × %s m² facade",
				c.Name, opt.Code, cat.Facade.BaseRate, opt.Price, area),
		}, nil

	default:
		return types.ResolvedLineItem{}, errors.Newf(errors.TypeIntegrity,
			"category %q has unpriceable kind %q", c.Name, c.Kind)
	}
}

// FacadeArea derives a facade surface from the floor surface using a fixed
// shape assumption: square footprint, one storey, four walls of the given
// height. The result is rounded to two decimals so estimates stay
// reproducible across platforms.
func FacadeArea(surface, wallHeight decimal.Decimal) (decimal.Decimal, error) {
	f, _ := surface.Float64()
	side := math.Sqrt(f)
	if math.IsNaN(side) || math.IsInf(side, 0) {
		return decimal.Zero, errors.Integrity("facade area derivation produced a non-finite value for surface %s", surface)
	}
	perimeter := decimal.NewFromFloat(side).Mul(decimal.NewFromInt(4))
	return perimeter.Mul(wallHeight).Round(2), nil
}
