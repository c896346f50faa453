package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"aansluitintake/internal/config"
	"aansluitintake/internal/parser"
	"aansluitintake/internal/port"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Extractor implements port.ConnectionExtractor using the OpenAI Chat
// Completions API.
type Extractor struct {
	provider   string
	apiKey     string
	model      string
	endpoint   string
	maxRetries int
	client     *http.Client
}

// NewExtractor creates an OpenAI-based connection extractor from a provider config.
func NewExtractor(cfg *config.ParserProviderConfig) *Extractor {
	return newExtractor(cfg, apiURL)
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API
// endpoint. Used by OpenAI-compatible providers and by tests.
func NewExtractorWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.ParserProviderConfig, endpoint string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "openai"
	}
	return &Extractor{
		provider:   provider,
		apiKey:     cfg.APIKey,
		model:      model,
		endpoint:   endpoint,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	prompt := parser.BuildConnectionPrompt(input.Options)

	contentBlocks, err := buildContentBlocks(input, prompt)
	if err != nil {
		return nil, fmt.Errorf("building content blocks: %w", err)
	}

	reqBody := map[string]interface{}{
		"model":                 e.model,
		"max_completion_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	respBody, err := e.doWithRetry(ctx, bodyBytes)
	if err != nil {
		return nil, err
	}

	return decodeResponse(respBody, e.model, input.Options)
}

// doWithRetry posts the request, retrying transient statuses (429/502/503)
// up to maxRetries attempts. 429 honors Retry-After; otherwise the wait
// grows with the attempt number.
func (e *Extractor) doWithRetry(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+e.apiKey)

		resp, err := e.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("calling extraction API: %w", err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("reading response: %w", readErr)
		}

		if resp.StatusCode == http.StatusOK {
			return respBody, nil
		}

		baseErr := fmt.Errorf("extraction API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 300))
		if !parser.IsRetryableStatus(resp.StatusCode) {
			return nil, baseErr
		}

		retryAfterSecs := parser.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = parser.NewRateLimitError(e.provider, baseErr, retryAfterSecs)
		} else {
			lastErr = baseErr
		}

		if attempt == e.maxRetries {
			break
		}

		wait := parser.RetryBackoff(attempt)
		if retryAfterSecs > 0 {
			wait = time.Duration(retryAfterSecs) * time.Second
		}
		log.Printf("openai.Extractor: %s status %d on attempt %d/%d, retrying in %s", e.provider, resp.StatusCode, attempt, e.maxRetries, wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func buildContentBlocks(input port.ExtractInput, prompt string) ([]map[string]interface{}, error) {
	var blocks []map[string]interface{}

	switch {
	case input.Text != "":
		blocks = append(blocks, map[string]interface{}{
			"type": "text",
			"text": "DOCUMENT:\n" + input.Text,
		})
	case len(input.FileBytes) > 0:
		encoded := base64.StdEncoding.EncodeToString(input.FileBytes)
		dataURI := fmt.Sprintf("data:%s;base64,%s", input.ContentType, encoded)
		switch input.ContentType {
		case "application/pdf":
			blocks = append(blocks, map[string]interface{}{
				"type": "file",
				"file": map[string]interface{}{
					"filename":  "document.pdf",
					"file_data": dataURI,
				},
			})
		case "image/jpeg", "image/png":
			blocks = append(blocks, map[string]interface{}{
				"type": "image_url",
				"image_url": map[string]interface{}{
					"url": dataURI,
				},
			})
		default:
			return nil, fmt.Errorf("unsupported content type for extraction: %s", input.ContentType)
		}
	default:
		return nil, fmt.Errorf("empty extraction input")
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": prompt,
	})

	return blocks, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func decodeResponse(body []byte, model string, opts port.ExtractOptions) (*port.ExtractOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	connections, warning, err := parser.DecodeRecords(resp.Choices[0].Message.Content, opts)
	if err != nil {
		return nil, err
	}

	return &port.ExtractOutput{
		Connections: connections,
		Warning:     warning,
		ModelUsed:   model,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
