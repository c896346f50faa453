package groq

import (
	"aansluitintake/internal/config"
	"aansluitintake/internal/parser/openai"
)

const (
	apiURL = "https://api.groq.com/openai/v1/chat/completions"
)

// NewExtractor creates a Groq-based connection extractor. Groq serves an
// OpenAI-compatible chat completions API, so the OpenAI client is reused
// with the Groq endpoint.
func NewExtractor(cfg *config.ParserProviderConfig) *openai.Extractor {
	provider := *cfg
	if provider.DefaultModel == "" {
		provider.DefaultModel = "llama-3.3-70b-versatile"
	}
	return openai.NewExtractorWithEndpoint(&provider, apiURL)
}
