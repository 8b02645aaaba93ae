// Package validate - Project input validation
// The validator is the only component that sees raw input. It either returns
// a fully typed ProjectInput or the complete list of offending fields; the
// engine never partially computes on invalid input.
package validate

import (
	"math"
	"sort"
	"time"

	"baticost/core/catalog"
	"baticost/core/types"
	"baticost/internal/errors"
)

// MaxSurfaceM2 is the sanity ceiling: values above it are implausible and
// rejected rather than silently accepted
const MaxSurfaceM2 = 100000

// MaxTargetYears bounds the inflation extrapolation horizon
const MaxTargetYears = 30

// DateLayout is the accepted target date format
const DateLayout = "2006-01-02"

// Validate normalizes and checks a raw project description against the
// catalog's known keys. On failure the returned error is a
// *errors.ValidationErrors enumerating every offending field.
func Validate(raw *types.RawProjectInput, cat *catalog.Catalog, now time.Time) (*types.ProjectInput, error) {
	verr := errors.NewValidationErrors()

	projectType := types.ProjectType(raw.ProjectType)
	if !projectType.Known() {
		verr.Add("project_type", "unknown project type %q", raw.ProjectType)
	}

	switch {
	case math.IsNaN(raw.Surface) || math.IsInf(raw.Surface, 0):
		verr.Add("surface", "surface must be a finite number")
	case raw.Surface <= 0:
		verr.Add("surface", "surface must be positive, got %g", raw.Surface)
	case raw.Surface > MaxSurfaceM2:
		verr.Add("surface", "surface %g m² exceeds the plausibility ceiling of %d m²", raw.Surface, MaxSurfaceM2)
	}

	clientType := types.ClientType(raw.ClientType)
	if !clientType.Known() {
		verr.Add("client_type", "unknown client type %q", raw.ClientType)
	}

	// Activity only means something for professional clients; for everyone
	// else it is ignored even if present.
	activity := ""
	if clientType == types.ClientProfessional {
		if raw.Activity == "" {
			verr.Add("activity", "activity is required for professional clients")
		} else if _, ok := cat.ActivityMultiplier(raw.Activity); !ok {
			verr.Add("activity", "unknown professional activity %q", raw.Activity)
		} else {
			activity = raw.Activity
		}
	}

	if raw.Region == "" {
		verr.Add("region", "region is required")
	}

	if _, ok := cat.FinishCoefficient(raw.FinishLevel); !ok {
		verr.Add("finish_level", "unknown finish level %q", raw.FinishLevel)
	}

	precision := types.Precision(raw.Precision)
	if !precision.Known() {
		verr.Add("precision", "unknown estimation precision %q", raw.Precision)
	}

	var targetDate time.Time
	if raw.TargetDate != "" {
		parsed, err := time.Parse(DateLayout, raw.TargetDate)
		if err != nil {
			verr.Add("target_date", "invalid date %q, expected YYYY-MM-DD", raw.TargetDate)
		} else if parsed.After(now.AddDate(MaxTargetYears, 0, 0)) {
			verr.Add("target_date", "target date %s is more than %d years in the future", raw.TargetDate, MaxTargetYears)
		} else {
			// Past dates are accepted; the composer clamps them to "no
			// inflation" since catalog prices are already current.
			targetDate = parsed
		}
	}

	selections := make(map[string]string, len(raw.Selections))
	for _, name := range sortedKeys(raw.Selections) {
		code := raw.Selections[name]
		c, ok := cat.Category(name)
		if !ok {
			verr.Add("selections."+name, "unknown category %q", name)
			continue
		}
		if _, ok := c.Option(code); !ok {
			verr.Add("selections."+name, "unknown option %q for category %q", code, name)
			continue
		}
		selections[name] = code
	}

	addOnSet := make(map[string]bool, len(raw.AddOns))
	for _, code := range raw.AddOns {
		if _, ok := cat.AddOn(code); !ok {
			verr.Add("add_ons", "unknown add-on service %q", code)
			continue
		}
		addOnSet[code] = true
	}
	addOns := make([]string, 0, len(addOnSet))
	for code := range addOnSet {
		addOns = append(addOns, code)
	}
	sort.Strings(addOns)

	if raw.TaxRateOverride != nil {
		r := *raw.TaxRateOverride
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 || r > 1 {
			verr.Add("tax_rate_override", "tax rate override must be within [0, 1], got %g", r)
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	return &types.ProjectInput{
		ProjectType:     projectType,
		Surface:         raw.Surface,
		ClientType:      clientType,
		Activity:        activity,
		Region:          raw.Region,
		FinishLevel:     raw.FinishLevel,
		Precision:       precision,
		TargetDate:      targetDate,
		Selections:      selections,
		AddOns:          addOns,
		TaxRateOverride: raw.TaxRateOverride,
	}, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
