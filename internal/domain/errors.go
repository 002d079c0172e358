// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or input fails validation.
	// This is usually wrapped in a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyField is returned when a required field is empty after trimming.
	ErrEmptyField = errors.New("field cannot be empty")

	// ErrFieldTooLong is returned when a value exceeds its column width.
	ErrFieldTooLong = errors.New("field exceeds maximum length")

	// ErrInvalidType is returned when a value does not match its declared column type.
	ErrInvalidType = errors.New("value does not match column type")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
