// Package postgres provides the PostgreSQL implementation of the store
// interfaces defined in the internal/store package. It owns the process-wide
// connection pool, executes parameterized statements with typed bindings, and
// maps rows and driver errors to domain values and store errors.
package postgres
