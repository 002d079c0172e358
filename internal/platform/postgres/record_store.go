package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/store"
)

const (
	selectRecordsSQL = `SELECT id, name, phone, address, remark FROM list`

	insertRecordSQL = `INSERT INTO list (id, name, phone, address, remark)
VALUES (@id, @name, @phone, @address, @remark)`

	updateRecordSQL = `UPDATE list
SET name = @name, phone = @phone, address = @address, remark = @remark
WHERE id = @id`

	deleteRecordSQL = `DELETE FROM list WHERE id = @id`

	orderByID = ` ORDER BY id`
)

// PostgresRecordStore implements the store.RecordStore interface on the
// list table.
type PostgresRecordStore struct {
	pool   store.PoolProvider
	exec   *Executor
	logger *slog.Logger
}

// Ensure PostgresRecordStore implements store.RecordStore interface
var _ store.RecordStore = (*PostgresRecordStore)(nil)

// NewRecordStore creates a new PostgreSQL implementation of the RecordStore
// interface. The pool is resolved per operation, so the store can be built
// before the database is reachable.
func NewRecordStore(pool store.PoolProvider, exec *Executor, logger *slog.Logger) *PostgresRecordStore {
	if logger == nil {
		logger = slog.Default()
	}
	if exec == nil {
		exec = NewExecutor(DefaultQueryTimeout, logger, nil)
	}
	return &PostgresRecordStore{
		pool:   pool,
		exec:   exec,
		logger: logger.With(slog.String("component", "record_store")),
	}
}

func idBinding(id string) Bind {
	return Bind{Type: Char(domain.IDLength), Value: id}
}

func fieldBindings(fields domain.RecordFields) Bindings {
	return Bindings{
		"name":    {Type: VarChar(domain.NameMaxLength), Value: fields.Name},
		"phone":   {Type: VarChar(domain.PhoneMaxLength), Value: fields.Phone},
		"address": {Type: VarChar(domain.AddressMaxLength), Value: fields.Address},
		"remark":  {Type: VarChar(domain.RemarkMaxLength).Null(), Value: fields.Remark},
	}
}

// scanRecord converts a result row into a Record. The id column is CHAR, so
// the padding the store adds to short ids is trimmed.
func scanRecord(row Row) domain.Record {
	return domain.Record{
		ID:      strings.TrimRight(row.String("id"), " "),
		Name:    row.String("name"),
		Phone:   row.String("phone"),
		Address: row.String("address"),
		Remark:  row.String("remark"),
	}
}

func scanRecords(rows RowSet) []domain.Record {
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, scanRecord(row))
	}
	return records
}

func (s *PostgresRecordStore) db(ctx context.Context, operation string) (*sql.DB, error) {
	db, err := s.pool.Get(ctx)
	if err != nil {
		return nil, MapError(operation, err)
	}
	return db, nil
}

// Insert implements store.RecordStore.Insert.
func (s *PostgresRecordStore) Insert(ctx context.Context, record domain.Record) (int64, error) {
	const op = "insert_record"

	db, err := s.db(ctx, op)
	if err != nil {
		return 0, err
	}

	binds := fieldBindings(record.Fields())
	binds["id"] = idBinding(record.ID)

	affected, err := s.exec.Exec(ctx, db, op, insertRecordSQL, binds)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("record inserted", slog.Int64("rows_affected", affected))
	return affected, nil
}

// List implements store.RecordStore.List.
func (s *PostgresRecordStore) List(ctx context.Context) ([]domain.Record, error) {
	const op = "list_records"

	db, err := s.db(ctx, op)
	if err != nil {
		return nil, err
	}

	rows, err := s.exec.Query(ctx, db, op, selectRecordsSQL+orderByID, nil)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows), nil
}

// Search implements store.RecordStore.Search.
func (s *PostgresRecordStore) Search(ctx context.Context, token string) ([]domain.Record, error) {
	const op = "search_records"

	db, err := s.db(ctx, op)
	if err != nil {
		return nil, err
	}

	predicate, binds := BuildSearchPredicate(token)
	rows, err := s.exec.Query(ctx, db, op, selectRecordsSQL+" WHERE "+predicate+orderByID, binds)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows), nil
}

// GetByID implements store.RecordStore.GetByID.
func (s *PostgresRecordStore) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	const op = "get_record"

	db, err := s.db(ctx, op)
	if err != nil {
		return nil, err
	}

	rows, err := s.exec.Query(ctx, db, op, selectRecordsSQL+" WHERE id = @id", Bindings{"id": idBinding(id)})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrRecordNotFound
	}

	record := scanRecord(rows[0])
	return &record, nil
}

// Update implements store.RecordStore.Update.
func (s *PostgresRecordStore) Update(ctx context.Context, id string, fields domain.RecordFields) (int64, error) {
	const op = "update_record"

	db, err := s.db(ctx, op)
	if err != nil {
		return 0, err
	}

	binds := fieldBindings(fields)
	binds["id"] = idBinding(id)

	affected, err := s.exec.Exec(ctx, db, op, updateRecordSQL, binds)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("record updated", slog.Int64("rows_affected", affected))
	return affected, nil
}

// Delete implements store.RecordStore.Delete.
func (s *PostgresRecordStore) Delete(ctx context.Context, id string) (int64, error) {
	const op = "delete_record"

	db, err := s.db(ctx, op)
	if err != nil {
		return 0, err
	}

	affected, err := s.exec.Exec(ctx, db, op, deleteRecordSQL, Bindings{"id": idBinding(id)})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("record deleted", slog.Int64("rows_affected", affected))
	return affected, nil
}
