// Package api - Request and response types
package api

import (
	"baticost/core/types"
	"baticost/internal/errors"
)

// EstimateRequest is the wire form of one estimate request
type EstimateRequest struct {
	ProjectType string            `json:"project_type"`
	Surface     float64           `json:"surface"`
	ClientType  string            `json:"client_type"`
	Activity    string            `json:"activity,omitempty"`
	Region      string            `json:"region"`
	FinishLevel string            `json:"finish_level"`
	Precision   string            `json:"precision"`
	TargetDate  string            `json:"target_date,omitempty"`
	Selections  map[string]string `json:"selections,omitempty"`
	AddOns      []string          `json:"add_ons,omitempty"`

	TaxRateOverride *float64 `json:"tax_rate_override,omitempty"`
}

// toRawInput maps the wire form onto the engine's raw input
func (r *EstimateRequest) toRawInput() *types.RawProjectInput {
	return &types.RawProjectInput{
		ProjectType:     r.ProjectType,
		Surface:         r.Surface,
		ClientType:      r.ClientType,
		Activity:        r.Activity,
		Region:          r.Region,
		FinishLevel:     r.FinishLevel,
		Precision:       r.Precision,
		TargetDate:      r.TargetDate,
		Selections:      r.Selections,
		AddOns:          r.AddOns,
		TaxRateOverride: r.TaxRateOverride,
	}
}

// EstimateResponse wraps the engine result with request metadata
type EstimateResponse struct {
	RequestID  string                  `json:"request_id"`
	DurationMs int64                   `json:"duration_ms"`
	Result     *types.EstimationResult `json:"result"`
}

// ErrorResponse is the wire form of any failure
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`

	// Fields carries the field-level breakdown for validation failures
	Fields []errors.FieldError `json:"fields,omitempty"`
}

// CatalogResponse summarizes the current catalog snapshot
type CatalogResponse struct {
	Version    string   `json:"version"`
	Currency   string   `json:"currency"`
	Categories []string `json:"categories"`
	AddOns     []string `json:"add_ons"`
	Regions    []string `json:"regions"`
}

// ReloadRequest asks for an atomic catalog swap from a file
type ReloadRequest struct {
	Path string `json:"path"`
}

// ReloadResponse reports the installed catalog version
type ReloadResponse struct {
	Version string `json:"version"`
}
