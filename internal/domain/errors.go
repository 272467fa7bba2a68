package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrMalformedGrid    = errors.New("malformed grid")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidWord      = errors.New("invalid word")
	ErrLookupFailed     = errors.New("external lookup failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// MalformedGridError describes why a grid was rejected.
type MalformedGridError struct {
	Row    int // -1 when the problem is not tied to a row
	Reason string
}

func (e *MalformedGridError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("malformed grid: %s", e.Reason)
	}
	return fmt.Sprintf("malformed grid: row %d: %s", e.Row, e.Reason)
}

func (e *MalformedGridError) Unwrap() error { return ErrMalformedGrid }

// UnknownAlgorithmError is returned when a registry is asked for a name it
// does not hold.
type UnknownAlgorithmError struct {
	Kind  string // "rarity", "novelty", "crosswordese"
	Name  string
	Known []string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown %s algorithm %q (known: %s)", e.Kind, e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownAlgorithmError) Unwrap() error { return ErrUnknownAlgorithm }

// WordError isolates a scoring failure to a single answer.
type WordError struct {
	Word string
	Err  error
}

func (e *WordError) Error() string {
	return fmt.Sprintf("word %q: %v", e.Word, e.Err)
}

func (e *WordError) Unwrap() error { return e.Err }
