// Package gemini provides the HTTP adapter to the Gemini generation
// API. It handles transport, authentication and upstream error
// reporting only; interpreting the response envelope belongs to the
// application layer.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/culina/v2/internal/infrastructure/config"
	"github.com/culina/v2/internal/ports/outbound"
)

// Client calls the generateContent endpoint over REST.
type Client struct {
	http   *resty.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a Gemini REST client from the provider config.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)

	return &Client{
		http:   rest,
		model:  cfg.Model,
		logger: logger,
	}
}

// Wire types for the generateContent request body.
type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64         `json:"temperature"`
	TopP             float64         `json:"topP,omitempty"`
	TopK             int             `json:"topK,omitempty"`
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate performs one generation round trip and returns the raw
// response envelope.
func (c *Client) Generate(ctx context.Context, req outbound.AIRequest) (*outbound.AIEnvelope, error) {
	body := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: req.Prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:      req.Generation.Temperature,
			TopP:             req.Generation.TopP,
			TopK:             req.Generation.TopK,
			ResponseMIMEType: req.Generation.ResponseMIMEType,
			ResponseSchema:   req.Generation.ResponseSchema,
		},
	}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemInstruction}}}
	}

	var envelope outbound.AIEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&envelope).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		message := upstreamMessage(resp.Body())
		c.logger.Warn("gemini API returned error",
			zap.Int("status", resp.StatusCode()),
			zap.String("purpose", req.Purpose),
			zap.String("message", message),
		)
		return nil, fmt.Errorf("gemini API status %d: %s", resp.StatusCode(), message)
	}

	c.logger.Debug("gemini response received",
		zap.String("purpose", req.Purpose),
		zap.Int("candidates", len(envelope.Candidates)),
	)
	return &envelope, nil
}

// upstreamMessage extracts the human-readable message from an error
// body, falling back to the raw payload.
func upstreamMessage(body []byte) string {
	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return string(body)
}
