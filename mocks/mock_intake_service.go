package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/extract"
	"aansluitintake/internal/service"
)

// MockIntakeService is a mock implementation of service.IntakeService.
type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) IntakeText(ctx context.Context, input service.TextIntakeInput) ([]domain.Connection, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Connection), args.Error(1)
}

func (m *MockIntakeService) IntakeExcel(ctx context.Context, r io.Reader) (*extract.ExcelImportResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extract.ExcelImportResult), args.Error(1)
}

func (m *MockIntakeService) UploadFile(ctx context.Context, input service.FileIntakeInput) (*domain.IntakeJob, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntakeJob), args.Error(1)
}

func (m *MockIntakeService) GetJob(ctx context.Context, id uuid.UUID) (*domain.IntakeJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntakeJob), args.Error(1)
}

func (m *MockIntakeService) ListJobs(ctx context.Context, offset, limit int) ([]domain.IntakeJob, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IntakeJob), args.Int(1), args.Error(2)
}

func (m *MockIntakeService) StopQueued(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIntakeService) ProcessJob(ctx context.Context, job *domain.IntakeJob) {
	m.Called(ctx, job)
}
