// Package types - Project domain types
package types

import "time"

// ProjectType identifies the kind of building project
type ProjectType string

const (
	ProjectConstruction ProjectType = "construction"
	ProjectRenovation   ProjectType = "renovation"
	ProjectExtension    ProjectType = "extension"
	ProjectOptimization ProjectType = "optimization"
	ProjectDivision     ProjectType = "division"
	ProjectDesign       ProjectType = "design"
	ProjectElevation    ProjectType = "elevation"
)

// AllProjectTypes lists every known project type in display order
var AllProjectTypes = []ProjectType{
	ProjectConstruction,
	ProjectRenovation,
	ProjectExtension,
	ProjectOptimization,
	ProjectDivision,
	ProjectDesign,
	ProjectElevation,
}

// String returns the string representation
func (t ProjectType) String() string {
	return string(t)
}

// Known reports whether the value is a member of the enumeration
func (t ProjectType) Known() bool {
	for _, v := range AllProjectTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ClientType identifies who is requesting the estimate
type ClientType string

const (
	ClientIndividual   ClientType = "individual"
	ClientProfessional ClientType = "professional"
	ClientInvestor     ClientType = "investor"
)

// AllClientTypes lists every known client type
var AllClientTypes = []ClientType{ClientIndividual, ClientProfessional, ClientInvestor}

// String returns the string representation
func (t ClientType) String() string {
	return string(t)
}

// Known reports whether the value is a member of the enumeration
func (t ClientType) Known() bool {
	for _, v := range AllClientTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Precision identifies how thorough the estimate should be
type Precision string

const (
	PrecisionQuick   Precision = "quick"
	PrecisionPrecise Precision = "precise"
)

// String returns the string representation
func (p Precision) String() string {
	return string(p)
}

// Known reports whether the value is a member of the enumeration
func (p Precision) Known() bool {
	return p == PrecisionQuick || p == PrecisionPrecise
}

// RawProjectInput is the loosely-typed project description as received from
// the intake layer, before any validation.
type RawProjectInput struct {
	// ProjectType is the kind of project (construction, renovation, ...)
	ProjectType string `json:"project_type"`

	// Surface is the floor surface in m²
	Surface float64 `json:"surface"`

	// ClientType is who requests the estimate (individual, professional, investor)
	ClientType string `json:"client_type"`

	// Activity is the professional activity; required iff ClientType is professional
	Activity string `json:"activity,omitempty"`

	// Region is the region code; unknown codes fall back to the default coefficient
	Region string `json:"region"`

	// FinishLevel is the finish level code
	FinishLevel string `json:"finish_level"`

	// Precision is the estimation precision (quick, precise)
	Precision string `json:"precision"`

	// TargetDate is the optional target completion date (ISO date)
	TargetDate string `json:"target_date,omitempty"`

	// Selections maps category name to the selected option code
	Selections map[string]string `json:"selections,omitempty"`

	// AddOns lists selected one-off service codes
	AddOns []string `json:"add_ons,omitempty"`

	// TaxRateOverride replaces the catalog development-tax rate when set
	TaxRateOverride *float64 `json:"tax_rate_override,omitempty"`
}

// ProjectInput is a validated, immutable project description. It is
// constructed once per estimate request by the validator and never mutated
// afterwards; an estimate is a pure function of this value and the catalog.
type ProjectInput struct {
	ProjectType ProjectType
	Surface     float64
	ClientType  ClientType
	Activity    string
	Region      string
	FinishLevel string
	Precision   Precision

	// TargetDate is zero when the caller did not supply one, meaning "now"
	TargetDate time.Time

	// Selections maps category name to validated option code
	Selections map[string]string

	// AddOns is the sorted list of validated add-on service codes
	AddOns []string

	// TaxRateOverride replaces the catalog development-tax rate when non-nil
	TaxRateOverride *float64
}
