package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/pagination"
	"github.com/phrazzld/rolodex-api/internal/platform/logger"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// WriteResult reports the outcome of a create, update or delete.
// RowsAffected may be zero for update and delete; that is not an error.
type WriteResult struct {
	RowsAffected int64          `json:"rowsAffected"`
	Record       *domain.Record `json:"record,omitempty"`
}

// ListResult is one page of the full record set. AllUnfiltered always holds
// every record, regardless of the page requested.
type ListResult struct {
	Items         []domain.Record `json:"items"`
	PageCount     int             `json:"pageCount"`
	AllUnfiltered []domain.Record `json:"allUnfiltered"`
}

// SearchResult is one page of the records matching a search token.
type SearchResult struct {
	Items     []domain.Record `json:"items"`
	PageCount int             `json:"pageCount"`
}

// RecordService provides record-related operations. A page number below 1
// means no page was requested and every row is returned.
type RecordService interface {
	// Create inserts a new record.
	Create(ctx context.Context, record domain.Record) (*WriteResult, error)

	// List returns a page of all records.
	List(ctx context.Context, page int) (*ListResult, error)

	// Search returns a page of the records containing token in any column.
	Search(ctx context.Context, token string, page int) (*SearchResult, error)

	// Get retrieves a single record by ID.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// Update overwrites the mutable fields of the record with the given ID.
	Update(ctx context.Context, id string, fields domain.RecordFields) (*WriteResult, error)

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id string) (*WriteResult, error)
}

// recordServiceImpl implements the RecordService interface
type recordServiceImpl struct {
	store    store.RecordStore
	pageSize int
	logger   *slog.Logger
}

// NewRecordService creates a new RecordService.
// It returns an error if the store is nil or the page size is not positive.
func NewRecordService(
	recordStore store.RecordStore,
	pageSize int,
	logger *slog.Logger,
) (RecordService, error) {
	if recordStore == nil {
		return nil, fmt.Errorf("%w: record store cannot be nil", ErrInvalidDependency)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDependency, pagination.ErrInvalidPageSize)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &recordServiceImpl{
		store:    recordStore,
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "record_service")),
	}, nil
}

// wrap passes validation and not-found errors through untouched and wraps
// everything else with the failing operation.
func wrap(operation, message string, err error) error {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, store.ErrNotFound) {
		return err
	}
	return NewRecordServiceError(operation, message, err)
}

// Create implements RecordService.Create
func (s *recordServiceImpl) Create(ctx context.Context, record domain.Record) (*WriteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Debug("invalid record", slog.String("error", err.Error()))
		return nil, err
	}

	affected, err := s.store.Insert(ctx, record)
	if err != nil {
		return nil, wrap("create", "failed to insert record", err)
	}

	log.Info("record created", slog.String("record_id", record.ID))
	return &WriteResult{RowsAffected: affected, Record: &record}, nil
}

// List implements RecordService.List
func (s *recordServiceImpl) List(ctx context.Context, page int) (*ListResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, wrap("list", "failed to load records", err)
	}

	p, err := pagination.Paginate(records, s.pageSize, page)
	if err != nil {
		return nil, wrap("list", "failed to paginate records", err)
	}

	log.Debug("records listed",
		slog.Int("page", page),
		slog.Int("page_count", p.PageCount),
		slog.Int("total", len(records)))

	return &ListResult{
		Items:         p.Items,
		PageCount:     p.PageCount,
		AllUnfiltered: records,
	}, nil
}

// Search implements RecordService.Search
func (s *recordServiceImpl) Search(ctx context.Context, token string, page int) (*SearchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.store.Search(ctx, token)
	if err != nil {
		return nil, wrap("search", "failed to search records", err)
	}

	p, err := pagination.Paginate(records, s.pageSize, page)
	if err != nil {
		return nil, wrap("search", "failed to paginate records", err)
	}

	log.Debug("records searched",
		slog.Int("page", page),
		slog.Int("matches", len(records)))

	return &SearchResult{Items: p.Items, PageCount: p.PageCount}, nil
}

// Get implements RecordService.Get
func (s *recordServiceImpl) Get(ctx context.Context, id string) (*domain.Record, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, wrap("get", "failed to load record", err)
	}
	return record, nil
}

// Update implements RecordService.Update
func (s *recordServiceImpl) Update(
	ctx context.Context,
	id string,
	fields domain.RecordFields,
) (*WriteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	affected, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, wrap("update", "failed to update record", err)
	}

	if affected == 0 {
		log.Info("update matched no record", slog.String("record_id", id))
	} else {
		log.Info("record updated", slog.String("record_id", id))
	}
	return &WriteResult{RowsAffected: affected}, nil
}

// Delete implements RecordService.Delete
func (s *recordServiceImpl) Delete(ctx context.Context, id string) (*WriteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	affected, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, wrap("delete", "failed to delete record", err)
	}

	if affected == 0 {
		log.Info("delete matched no record", slog.String("record_id", id))
	} else {
		log.Info("record deleted", slog.String("record_id", id))
	}
	return &WriteResult{RowsAffected: affected}, nil
}
