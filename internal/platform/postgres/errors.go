package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// stringTruncationCode is raised when a value is too long for its column
	stringTruncationCode = "22001"

	// connectionExceptionClass prefixes every connection exception code
	connectionExceptionClass = "08"

	// operatorInterventionClass covers admin shutdown and crash recovery
	operatorInterventionClass = "57P"
)

// MapError maps a database error to a store error for the named operation.
// Connection-level failures become *store.ConnectionError, everything else a
// *store.QueryError. Validation errors raised before execution pass through.
// The driver error stays wrapped for logging; it must not be shown to clients.
func MapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrConnection) ||
		errors.Is(err, store.ErrQuery) {
		return err
	}

	if IsConnectionFailure(err) {
		return store.NewConnectionError(operation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return store.NewQueryError(operation,
				fmt.Errorf("%w: constraint %s: %w", store.ErrDuplicate, pgErr.ConstraintName, err))
		case notNullViolationCode, checkViolationCode, stringTruncationCode:
			return store.NewQueryError(operation,
				fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
		}
	}

	return store.NewQueryError(operation, err)
}

// IsConnectionFailure reports whether err means the store could not be reached
// or did not answer in time, as opposed to rejecting a statement.
func IsConnectionFailure(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	if pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, connectionExceptionClass) ||
			strings.HasPrefix(pgErr.Code, operatorInterventionClass)
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
