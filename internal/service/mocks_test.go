package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/rolodex-api/internal/domain"
)

// MockRecordStore mocks the store.RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Insert(ctx context.Context, record domain.Record) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordStore) List(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordStore) Search(ctx context.Context, token string) ([]domain.Record, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordStore) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordStore) Update(ctx context.Context, id string, fields domain.RecordFields) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordStore) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
