package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/service"
	valconn "aansluitintake/internal/validator/connection"
)

// MockConnectionService is a mock implementation of service.ConnectionService.
type MockConnectionService struct {
	mock.Mock
}

func (m *MockConnectionService) Save(ctx context.Context, conn *domain.Connection) (*domain.Connection, error) {
	args := m.Called(ctx, conn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Connection), args.Error(1)
}

func (m *MockConnectionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Connection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Connection), args.Error(1)
}

func (m *MockConnectionService) List(ctx context.Context, offset, limit int) ([]domain.Connection, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Connection), args.Int(1), args.Error(2)
}

func (m *MockConnectionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConnectionService) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConnectionService) Validate(ctx context.Context, id uuid.UUID) (*valconn.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*valconn.Report), args.Error(1)
}

func (m *MockConnectionService) ApplyKVKProfile(ctx context.Context, id uuid.UUID, input service.ApplyKVKInput) (*domain.Connection, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Connection), args.Error(1)
}
