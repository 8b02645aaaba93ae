// Package coeff - Coefficient composition
// The composer turns the validated input into the ordered multiplier chain:
// client type → activity → estimation precision → region → finish level.
// Inflation is time-dependent and reported separately from the chain.
package coeff

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"baticost/core/catalog"
	"baticost/core/types"
	"baticost/internal/errors"
)

// Composition is the full set of multiplicative adjustments for one estimate
type Composition struct {
	// Coefficients is the ordered chain; the order is part of the contract
	Coefficients []types.AppliedCoefficient

	// InflationFactor is (1 + annual rate)^years, clamped to no less than 1
	InflationFactor decimal.Decimal
}

// Product returns the product of the chain values, excluding inflation.
// When turnkeyOnly is true only coefficients that apply to turnkey lines
// are included.
func (c *Composition) Product(turnkeyOnly bool) decimal.Decimal {
	p := decimal.NewFromInt(1)
	for _, ac := range c.Coefficients {
		if turnkeyOnly && !ac.AppliesToTurnkey {
			continue
		}
		p = p.Mul(ac.Value)
	}
	return p
}

const hoursPerYear = 24 * 365.25

// Compose builds the coefficient chain for a validated input. Every chain
// entry is present even when its value is 1.0, so the audit trail always
// shows the same five names in the same order. Any non-positive value aborts
// with a computation integrity error; a missing table entry for a validated
// key is a pricing gap.
func Compose(in *types.ProjectInput, cat *catalog.Catalog, now time.Time) (*Composition, error) {
	comp := &Composition{}

	client, ok := cat.ClientMultiplier(in.ClientType)
	if !ok {
		return nil, errors.Newf(errors.TypePricingGap, "no client multiplier for %q", in.ClientType)
	}
	if err := comp.append("client_type", client.Value, true); err != nil {
		return nil, err
	}

	activity := decimal.NewFromInt(1)
	if in.ClientType == types.ClientProfessional {
		m, ok := cat.ActivityMultiplier(in.Activity)
		if !ok {
			return nil, errors.Newf(errors.TypePricingGap, "no activity multiplier for %q", in.Activity)
		}
		activity = m.Value
	}
	if err := comp.append("activity", activity, true); err != nil {
		return nil, err
	}

	precision, ok := cat.PrecisionMultiplier(in.Precision)
	if !ok {
		return nil, errors.Newf(errors.TypePricingGap, "no precision multiplier for %q", in.Precision)
	}
	if err := comp.append("estimation_precision", precision.Value, true); err != nil {
		return nil, err
	}

	// Unknown regions resolve to the catalog's default entry; new regions
	// appear in content before the catalog is updated, so this must never
	// be a hard failure.
	region := cat.RegionCoefficient(in.Region)
	if err := comp.append("region", region.Value, true); err != nil {
		return nil, err
	}

	finish, ok := cat.FinishCoefficient(in.FinishLevel)
	if !ok {
		return nil, errors.Newf(errors.TypePricingGap, "no finish coefficient for %q", in.FinishLevel)
	}
	if err := comp.append("finish_level", finish.Value, cat.FinishAppliesToTurnkey); err != nil {
		return nil, err
	}

	factor, err := InflationFactor(cat.InflationRate, now, in.TargetDate)
	if err != nil {
		return nil, err
	}
	comp.InflationFactor = factor

	return comp, nil
}

func (c *Composition) append(name string, value decimal.Decimal, appliesToTurnkey bool) error {
	if !types.IsFinitePositive(value) {
		return errors.Integrity("coefficient %s has non-positive value %s", name, value)
	}
	c.Coefficients = append(c.Coefficients, types.AppliedCoefficient{
		Name:             name,
		Value:            value,
		AppliesToTurnkey: appliesToTurnkey,
	})
	return nil
}

// InflationFactor computes (1 + annualRate)^years between now and the target
// date. The exponent is clamped to a minimum of 0: past or immediate dates
// apply no inflation, since catalog prices are assumed already current. The
// factor is rounded to six decimals to keep estimates reproducible.
func InflationFactor(annualRate decimal.Decimal, now, target time.Time) (decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	if target.IsZero() || !target.After(now) {
		return one, nil
	}

	years := target.Sub(now).Hours() / hoursPerYear
	rate, _ := annualRate.Float64()
	factor := math.Pow(1+rate, years)
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return decimal.Zero, errors.Integrity("inflation factor is non-finite for rate %s over %.2f years", annualRate, years)
	}
	return decimal.NewFromFloat(factor).Round(6), nil
}
