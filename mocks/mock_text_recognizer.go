package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"aansluitintake/internal/port"
)

// MockTextRecognizer is a mock implementation of port.TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) RecognizeImage(ctx context.Context, image []byte) (*port.RecognizedText, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RecognizedText), args.Error(1)
}
