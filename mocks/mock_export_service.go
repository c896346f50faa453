package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"aansluitintake/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Render(ctx context.Context, format string) (*service.ExportFile, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) EmailExport(ctx context.Context, input service.EmailExportInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
