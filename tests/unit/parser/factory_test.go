package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"aansluitintake/internal/config"
	"aansluitintake/internal/parser"
	"aansluitintake/internal/port"
)

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.ConnectionExtractor, error) {
		return &stubExtractor{model: cfg.DefaultModel}, nil
	})

	e, err := parser.NewExtractor(&config.ParserProviderConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})

	assert.NoError(t, err)
	assert.NotNil(t, e)
}

func TestFactory_UnknownProvider(t *testing.T) {
	e, err := parser.NewExtractor(&config.ParserProviderConfig{
		Provider: "nonexistent-provider-xyz",
	})

	assert.Nil(t, e)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown extraction provider")
}

// stubExtractor is a minimal ConnectionExtractor for testing the factory.
type stubExtractor struct {
	model string
}

func (s *stubExtractor) Extract(_ context.Context, _ port.ExtractInput) (*port.ExtractOutput, error) {
	return &port.ExtractOutput{ModelUsed: s.model}, nil
}
