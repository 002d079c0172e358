//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/rolodex-api/internal/redact"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// MigrationTableName is the goose version table used by tests.
const MigrationTableName = "schema_migrations"

// Environment variables consulted for the test database URL, in order.
const (
	EnvTestDatabaseURL = "ROLODEX_TEST_DB_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

//go:embed migrations/*.sql
var migrations embed.FS

// GetTestDatabaseURL returns the first non-empty database URL from the
// environment, or "" if none is set.
func GetTestDatabaseURL() string {
	for _, key := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// Open connects to the test database, applies the schema and registers the
// connection for cleanup. The test is skipped when no database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set - skipping integration test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("database connection failed (%s): %s", redact.String(dbURL), redact.Error(err))
	}

	require.NoError(t, ApplyMigrations(db), "failed to apply test schema")
	return db
}

// ApplyMigrations applies the embedded schema to db.
func ApplyMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetTableName(MigrationTableName)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Reset removes every row from the list table.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	_, err := db.ExecContext(ctx, "TRUNCATE TABLE list")
	require.NoError(t, err, "failed to reset list table")
}

// Pool adapts an open *sql.DB to the store.PoolProvider interface.
type Pool struct {
	DB *sql.DB
}

// Get returns the wrapped connection.
func (p Pool) Get(context.Context) (*sql.DB, error) {
	return p.DB, nil
}
