package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	// ErrIntegrity marks storage-level constraint violations: dangling
	// foreign keys, duplicate unique keys, failed CHECK constraints.
	ErrIntegrity = errors.New("integrity violation")
	// ErrFetchTimeout is returned when an external content fetch exceeds its bound.
	ErrFetchTimeout = errors.New("external fetch timeout")
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

// ConflictError is returned when a candidate interval overlaps existing events.
// It is an expected outcome: callers show Conflicts to a human who may retry
// with the conflict explicitly accepted.
type ConflictError struct {
	Conflicts []Event
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return fmt.Sprintf("conflict: overlaps %q at %s",
			e.Conflicts[0].Title, e.Conflicts[0].StartAt.Format("2006-01-02 15:04"))
	}
	return fmt.Sprintf("conflict: overlaps %d events", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
