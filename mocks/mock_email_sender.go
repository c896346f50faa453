package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendExportEmail(ctx context.Context, toEmail, toName, fileName, downloadURL string) error {
	args := m.Called(ctx, toEmail, toName, fileName, downloadURL)
	return args.Error(0)
}
