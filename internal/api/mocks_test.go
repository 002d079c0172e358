package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/service"
)

// MockRecordService mocks the service.RecordService interface
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Create(ctx context.Context, record domain.Record) (*service.WriteResult, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WriteResult), args.Error(1)
}

func (m *MockRecordService) List(ctx context.Context, page int) (*service.ListResult, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult), args.Error(1)
}

func (m *MockRecordService) Search(ctx context.Context, token string, page int) (*service.SearchResult, error) {
	args := m.Called(ctx, token, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}

func (m *MockRecordService) Get(ctx context.Context, id string) (*domain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordService) Update(
	ctx context.Context,
	id string,
	fields domain.RecordFields,
) (*service.WriteResult, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WriteResult), args.Error(1)
}

func (m *MockRecordService) Delete(ctx context.Context, id string) (*service.WriteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WriteResult), args.Error(1)
}

// stubPinger is a Pinger returning a fixed error.
type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}
