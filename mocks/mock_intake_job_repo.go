package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"aansluitintake/internal/domain"
)

// MockIntakeJobRepo is a mock implementation of port.IntakeJobRepository.
type MockIntakeJobRepo struct {
	mock.Mock
}

func (m *MockIntakeJobRepo) Create(ctx context.Context, job *domain.IntakeJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockIntakeJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.IntakeJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntakeJob), args.Error(1)
}

func (m *MockIntakeJobRepo) List(ctx context.Context, offset, limit int) ([]domain.IntakeJob, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IntakeJob), args.Int(1), args.Error(2)
}

func (m *MockIntakeJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.IntakeJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IntakeJob), args.Error(1)
}

func (m *MockIntakeJobRepo) MarkCompleted(ctx context.Context, id uuid.UUID, recordCount int, ocrConfidence *float64) error {
	args := m.Called(ctx, id, recordCount, ocrConfidence)
	return args.Error(0)
}

func (m *MockIntakeJobRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

func (m *MockIntakeJobRepo) SkipQueued(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
