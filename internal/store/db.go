package store

import (
	"context"
	"database/sql"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sql.DB and *sql.Tx, allowing our code
// to work with either a pooled connection or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// PoolProvider hands out the shared connection pool. Implementations must be
// safe for concurrent use and must return the same handle once initialized.
type PoolProvider interface {
	Get(ctx context.Context) (*sql.DB, error)
}
