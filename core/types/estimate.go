// Package types - Estimation result types
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// ResolvedLineItem is one priced category selection. One line exists per
// category that has a selection; categories without a selection contribute no
// line, never a zero-amount one.
type ResolvedLineItem struct {
	// Category is the construction cost dimension (roofing, heating, ...)
	Category string `json:"category"`

	// Option is the selected option code within the category
	Option string `json:"option"`

	// UnitPrice is the catalog price used (EUR, per unit of Quantity)
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Quantity is the multiplier applied to UnitPrice (surface in m², a
	// derived facade area, or 1 for fixed-price items)
	Quantity decimal.Decimal `json:"quantity"`

	// Amount is UnitPrice × Quantity
	Amount decimal.Decimal `json:"amount"`

	// Turnkey marks fixed-tier package prices that are already
	// finish-level-aware; the finish coefficient must not touch them
	Turnkey bool `json:"turnkey,omitempty"`

	// Formula describes how the amount was computed, for auditability
	Formula string `json:"formula"`
}

// AppliedCoefficient is one multiplicative adjustment that was actually
// applied, in application order.
type AppliedCoefficient struct {
	// Name identifies the coefficient (client_type, region, ...)
	Name string `json:"name"`

	// Value is the multiplier; always > 0
	Value decimal.Decimal `json:"value"`

	// AppliesToTurnkey reports whether turnkey line items are scaled too
	AppliesToTurnkey bool `json:"applies_to_turnkey"`
}

// TimelineEstimate holds the projected phase durations in months. It is
// derived solely from project type and surface, never from monetary values.
type TimelineEstimate struct {
	DesignMonths       int `json:"design_months"`
	PermitMonths       int `json:"permit_months"`
	ConstructionMonths int `json:"construction_months"`
	TotalMonths        int `json:"total_months"`
}

// EstimationResult is the fully itemized outcome of one estimate request.
// All monetary fields are integer euro cents after round-half-up rounding,
// so downstream formatting cannot drift.
type EstimationResult struct {
	// CatalogVersion is the catalog snapshot the estimate was priced against
	CatalogVersion string `json:"catalog_version"`

	// Currency is the currency of every monetary field
	Currency Currency `json:"currency"`

	// LineItems is the ordered cost breakdown
	LineItems []LineItemCents `json:"line_items"`

	// SubtotalCents is the sum of line item amounts, before coefficients
	SubtotalCents int64 `json:"subtotal_cents"`

	// AppliedCoefficients lists the multipliers applied, in order
	AppliedCoefficients []AppliedCoefficient `json:"applied_coefficients"`

	// InflationFactor is the time adjustment applied on top of the coefficients
	InflationFactor decimal.Decimal `json:"inflation_factor"`

	// AfterCoefficientsCents is the subtotal after coefficients and inflation
	AfterCoefficientsCents int64 `json:"after_coefficients_cents"`

	// VATCents is the value-added tax
	VATCents int64 `json:"vat_cents"`

	// DevelopmentTaxCents is the development tax
	DevelopmentTaxCents int64 `json:"development_tax_cents"`

	// GrandTotalCents is AfterCoefficientsCents + VATCents + DevelopmentTaxCents
	GrandTotalCents int64 `json:"grand_total_cents"`

	// Timeline is the projected phase durations
	Timeline TimelineEstimate `json:"timeline"`
}

// LineItemCents is a line item with its amount fixed in integer cents after
// rounding reconciliation.
type LineItemCents struct {
	Category       string `json:"category"`
	Option         string `json:"option"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       string `json:"quantity"`
	AmountCents    int64  `json:"amount_cents"`
	Turnkey        bool   `json:"turnkey,omitempty"`
	Formula        string `json:"formula"`
}
