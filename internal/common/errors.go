// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Record errors.
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("duplicate record id")
	ErrIndexRange  = errors.New("record index out of range")

	// Backend errors.
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendStatus      = errors.New("backend returned non-success status")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a field value rejected before any state change.
// The collection is guaranteed untouched when one of these is returned.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s: %s", e.Value, e.Field, e.Reason)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusError carries the HTTP status of a failed backend call.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %v: status %d", e.Op, ErrBackendStatus, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrBackendStatus
}
