package service

import (
	"errors"
	"fmt"
)

// ErrInvalidDependency is returned by constructors given a nil dependency.
var ErrInvalidDependency = errors.New("invalid service dependency")

// RecordServiceError is a custom error type for record service errors.
type RecordServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for RecordServiceError.
func (e *RecordServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("record service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *RecordServiceError) Unwrap() error {
	return e.Err
}

// NewRecordServiceError creates a new RecordServiceError.
func NewRecordServiceError(operation, message string, err error) *RecordServiceError {
	return &RecordServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
