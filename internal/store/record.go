package store

import (
	"context"

	"github.com/phrazzld/rolodex-api/internal/domain"
)

// RecordStore defines the interface for list record persistence.
// Every method is a single statement; there are no multi-statement transactions.
type RecordStore interface {
	// Insert writes a new record and returns the number of rows inserted.
	// Returns a QueryError wrapping ErrDuplicate if the ID is taken.
	Insert(ctx context.Context, record domain.Record) (int64, error)

	// List returns every record in store order.
	List(ctx context.Context) ([]domain.Record, error)

	// Search returns every record whose id, name, phone, address or remark
	// contains token as a substring. An empty token matches every record.
	Search(ctx context.Context, token string) ([]domain.Record, error)

	// GetByID retrieves a record by its ID.
	// Returns ErrRecordNotFound if the record does not exist.
	GetByID(ctx context.Context, id string) (*domain.Record, error)

	// Update overwrites all mutable fields of the record with the given ID and
	// returns the number of rows affected. Zero rows is not an error.
	Update(ctx context.Context, id string, fields domain.RecordFields) (int64, error)

	// Delete removes the record with the given ID and returns the number of
	// rows affected. Zero rows is not an error.
	Delete(ctx context.Context, id string) (int64, error)
}
