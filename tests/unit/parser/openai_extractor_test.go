package parser_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aansluitintake/internal/config"
	"aansluitintake/internal/domain"
	"aansluitintake/internal/parser"
	openai "aansluitintake/internal/parser/openai"
	"aansluitintake/internal/port"
)

func newOpenAITestExtractor(serverURL string) *openai.Extractor {
	cfg := &config.ParserProviderConfig{
		Provider:     "openai",
		APIKey:       "test-openai-key",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  30,
		MaxRetries:   1,
	}
	return openai.NewExtractorWithEndpoint(cfg, serverURL)
}

func openaiSuccessResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAIExtractor_Extract_Text_Success(t *testing.T) {
	llmJSON := `{"connections":[{"eanCode":"8716 8590 0012 3456 78","product":"elektriciteit","tenaamstelling":"Bakkerij Jansen B.V."}],"warning":""}`
	responseBody := openaiSuccessResponse(llmJSON)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify auth header
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// Verify request body
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-4o", reqBody["model"])
		assert.Equal(t, float64(16384), reqBody["max_completion_tokens"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		content := msg["content"].([]interface{})
		assert.Len(t, content, 2)

		// First block: the document text
		docBlock := content[0].(map[string]interface{})
		assert.Equal(t, "text", docBlock["type"])
		assert.Contains(t, docBlock["text"], "DOCUMENT:")

		// Second block: the instruction prompt
		promptBlock := content[1].(map[string]interface{})
		assert.Equal(t, "text", promptBlock["type"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	e := newOpenAITestExtractor(server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		Text:    "EAN 871685900012345678 elektriciteit",
		Options: port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "gpt-4o", result.ModelUsed)
	require.Len(t, result.Connections, 1)

	conn := result.Connections[0]
	assert.Equal(t, "871685900012345678", conn.EANCode)
	assert.Equal(t, "Elektra", conn.Product)
	assert.Equal(t, "Bakkerij Jansen B.V.", conn.Tenaamstelling)
	assert.Equal(t, domain.SourceOCRPDF, conn.Source)
}

func TestOpenAIExtractor_Extract_Image_JPEG_Success(t *testing.T) {
	llmJSON := `{"connections":[{"eanCode":"871685900012345678"}],"warning":""}`
	responseBody := openaiSuccessResponse(llmJSON)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		if err != nil {
			return
		}

		messages := reqBody["messages"].([]interface{})
		msg := messages[0].(map[string]interface{})
		content := msg["content"].([]interface{})

		imgBlock := content[0].(map[string]interface{})
		assert.Equal(t, "image_url", imgBlock["type"])
		imgURL := imgBlock["image_url"].(map[string]interface{})
		assert.Contains(t, imgURL["url"], "data:image/jpeg;base64,")

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	e := newOpenAITestExtractor(server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte{0xFF, 0xD8, 0xFF, 0xE0},
		ContentType: "image/jpeg",
		Options:     port.ExtractOptions{Source: domain.SourceOCRPhoto},
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestOpenAIExtractor_Extract_PDF_UsesFileBlock(t *testing.T) {
	llmJSON := `{"connections":[{"eanCode":"871685900012345678"}],"warning":""}`
	responseBody := openaiSuccessResponse(llmJSON)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		if err != nil {
			return
		}

		messages := reqBody["messages"].([]interface{})
		msg := messages[0].(map[string]interface{})
		content := msg["content"].([]interface{})

		fileBlock := content[0].(map[string]interface{})
		assert.Equal(t, "file", fileBlock["type"])
		file := fileBlock["file"].(map[string]interface{})
		assert.Equal(t, "document.pdf", file["filename"])
		assert.Contains(t, file["file_data"], "data:application/pdf;base64,")

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	e := newOpenAITestExtractor(server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 test content"),
		ContentType: "application/pdf",
		Options:     port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestOpenAIExtractor_Extract_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit exceeded","type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	e := newOpenAITestExtractor(server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		Text:    "EAN 871685900012345678",
		Options: port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	assert.Nil(t, result)
	assert.Error(t, err)

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, float64(30*1e9), float64(rlErr.RetryAfter)) // 30s in nanoseconds
	assert.Contains(t, rlErr.Err.Error(), "extraction API error (status 429)")
}

func TestOpenAIExtractor_Extract_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Internal server error","type":"server_error"}}`))
	}))
	defer server.Close()

	e := newOpenAITestExtractor(server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		Text:    "EAN 871685900012345678",
		Options: port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extraction API error (status 500)")

	var rlErr *parser.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestOpenAIExtractor_Extract_EmptyResponse(t *testing.T) {
	responseBody := map[string]interface{}{
		"choices": []map[string]interface{}{},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	e := newOpenAITestExtractor(server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		Text:    "EAN 871685900012345678",
		Options: port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIExtractor_Extract_TruncatedOutput(t *testing.T) {
	responseBody := map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": `{"connections":[{"eanCo`,
				},
				"finish_reason": "length",
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	e := newOpenAITestExtractor(server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		Text:    "EAN 871685900012345678",
		Options: port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "output truncated")
}

func TestOpenAIExtractor_Extract_InvalidJSON(t *testing.T) {
	responseBody := openaiSuccessResponse("This is not JSON at all, sorry!")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	e := newOpenAITestExtractor(server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		Text:    "EAN 871685900012345678",
		Options: port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decoding model JSON output")
}

func TestOpenAIExtractor_Extract_UnsupportedContentType(t *testing.T) {
	e := newOpenAITestExtractor("http://unused")

	result, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("text content"),
		ContentType: "text/plain",
		Options:     port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestOpenAIExtractor_Extract_RetriesTransientStatus(t *testing.T) {
	llmJSON := `{"connections":[{"eanCode":"871685900012345678"}],"warning":""}`
	responseBody := openaiSuccessResponse(llmJSON)

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	cfg := &config.ParserProviderConfig{
		Provider:     "openai",
		APIKey:       "test-openai-key",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  30,
		MaxRetries:   2,
	}
	e := openai.NewExtractorWithEndpoint(cfg, server.URL)

	result, err := e.Extract(context.Background(), port.ExtractInput{
		Text:    "EAN 871685900012345678",
		Options: port.ExtractOptions{Source: domain.SourceOCRPDF},
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, calls)
}
