package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/culina/v2/internal/infrastructure/config"
	"github.com/culina/v2/internal/ports/outbound"
)

func testConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		Timeout: 5 * time.Second,
	}
}

func TestGenerateSendsRequestShape(t *testing.T) {
	var captured generateRequest
	var capturedPath, capturedKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"category\": \"fruits\"}"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zap.NewNop())

	env, err := client.Generate(context.Background(), outbound.AIRequest{
		Purpose:           "categorize_ingredient",
		Prompt:            "Classe l'ingrédient",
		SystemInstruction: "Réponds en JSON",
		Generation: outbound.GenerationConfig{
			Temperature:      0.2,
			TopP:             0.95,
			TopK:             40,
			ResponseMIMEType: "application/json",
			ResponseSchema:   []byte(`{"type": "object"}`),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", capturedPath)
	assert.Equal(t, "test-key", capturedKey)

	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "user", captured.Contents[0].Role)
	require.Len(t, captured.Contents[0].Parts, 1)
	assert.Equal(t, "Classe l'ingrédient", captured.Contents[0].Parts[0].Text)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "Réponds en JSON", captured.SystemInstruction.Parts[0].Text)

	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, 0.2, captured.GenerationConfig.Temperature)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMIMEType)
	assert.JSONEq(t, `{"type": "object"}`, string(captured.GenerationConfig.ResponseSchema))

	require.Len(t, env.Candidates, 1)
	require.NotNil(t, env.Candidates[0].Content)
	assert.Equal(t, `{"category": "fruits"}`, env.Candidates[0].Content.Parts[0].Text)
}

func TestGenerateOmitsEmptySystemInstruction(t *testing.T) {
	var captured generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zap.NewNop())

	_, err := client.Generate(context.Background(), outbound.AIRequest{Prompt: "bonjour"})
	require.NoError(t, err)
	assert.Nil(t, captured.SystemInstruction)
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "Resource has been exhausted", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zap.NewNop())

	_, err := client.Generate(context.Background(), outbound.AIRequest{Prompt: "bonjour"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "Resource has been exhausted")
}

func TestGenerateNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zap.NewNop())

	_, err := client.Generate(context.Background(), outbound.AIRequest{Prompt: "bonjour"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")
}
