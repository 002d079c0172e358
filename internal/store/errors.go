package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrConnection is matched by every ConnectionError: the pool could not be
	// established or the store could not be reached.
	ErrConnection = errors.New("store connection failed")

	// ErrQuery is matched by every QueryError: a statement was malformed,
	// violated a constraint, or failed on the store side.
	ErrQuery = errors.New("query failed")

	// ErrDuplicate is returned when an insert would create a second row with
	// the same primary key. It is always wrapped in a QueryError.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the store rejects a value, for example
	// a NULL in a required column or a string wider than its column. It is
	// always wrapped in a QueryError.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Update and delete never return it; they report zero affected rows instead.
	ErrNotFound = errors.New("entity not found")

	// ErrRecordNotFound indicates that the requested record does not exist in the store.
	ErrRecordNotFound = fmt.Errorf("%w: record", ErrNotFound)
)

// ConnectionError reports a failure to open, ping or reach the store.
// The process keeps running; the next operation retries.
type ConnectionError struct {
	Operation string
	Err       error
}

// Error implements the error interface for ConnectionError.
func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Operation, ErrConnection, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Operation, ErrConnection)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is makes every ConnectionError match ErrConnection.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// NewConnectionError creates a ConnectionError for the named operation.
func NewConnectionError(operation string, err error) *ConnectionError {
	return &ConnectionError{Operation: operation, Err: err}
}

// QueryError reports a failed statement. It is local to one operation.
type QueryError struct {
	Operation string
	Err       error
}

// Error implements the error interface for QueryError.
func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Operation, ErrQuery, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Operation, ErrQuery)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is makes every QueryError match ErrQuery.
func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

// NewQueryError creates a QueryError for the named operation.
func NewQueryError(operation string, err error) *QueryError {
	return &QueryError{Operation: operation, Err: err}
}

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is a duplicate key error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
