// Package errors provides error handling utilities.
package errors

import (
	"fmt"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeValidation indicates a user-facing input validation error
	TypeValidation Type = "VALIDATION_ERROR"

	// TypePricingGap indicates a validated selection with no catalog price
	TypePricingGap Type = "PRICING_GAP"

	// TypeIntegrity indicates a non-finite or non-positive intermediate value
	TypeIntegrity Type = "COMPUTATION_INTEGRITY"

	// TypeCatalog indicates a catalog authoring or loading error
	TypeCatalog Type = "CATALOG_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	if ve, ok := err.(*ValidationErrors); ok {
		return t == TypeValidation && ve.HasErrors()
	}
	return false
}

// PricingGap creates a pricing gap error for a category that has a validated
// selection but no corresponding catalog price
func PricingGap(category, option string) *Error {
	return Newf(TypePricingGap, "no catalog price for category %q option %q", category, option).
		WithContext("category", category).
		WithContext("option", option)
}

// Integrity creates a computation integrity error
func Integrity(format string, args ...interface{}) *Error {
	return Newf(TypeIntegrity, format, args...)
}

// Catalog creates a catalog error
func Catalog(message string, cause error) *Error {
	return Wrap(TypeCatalog, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every offending field of an input, not just the
// first. The validator always returns the complete list.
type ValidationErrors struct {
	Fields []FieldError `json:"fields"`
}

// NewValidationErrors creates an empty collection
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add appends a field-level failure
func (v *ValidationErrors) Add(field, format string, args ...interface{}) {
	v.Fields = append(v.Fields, FieldError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any field failed
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Fields) > 0
}

// ErrOrNil returns the collection as an error, or nil if empty
func (v *ValidationErrors) ErrOrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	msgs := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("[%s] %d invalid field(s): %s",
		TypeValidation, len(v.Fields), strings.Join(msgs, "; "))
}
