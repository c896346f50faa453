package port

import (
	"context"

	"aansluitintake/internal/domain"
)

// ExtractOptions control how source material is turned into records.
type ExtractOptions struct {
	Source        domain.ConnectionSource
	AllowMultiple bool
	SplitMode     domain.SplitMode
}

// ExtractInput carries the material for AI-assisted connection extraction.
// Either Text or FileBytes is set; FileBytes requires ContentType.
type ExtractInput struct {
	Text        string
	FileBytes   []byte
	ContentType string
	Options     ExtractOptions
}

// ExtractOutput contains the records an extraction provider produced.
type ExtractOutput struct {
	Connections []domain.Connection
	Warning     string
	ModelUsed   string
}

// ConnectionExtractor abstracts AI-based connection extraction.
type ConnectionExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
