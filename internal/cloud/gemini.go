package cloud

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient generates text with a Gemini model.
type GeminiClient struct {
	client *genai.Client
	model  string
}

type GeminiOption func(*genai.ClientConfig)

// WithBaseURL points the client at another endpoint, e.g. a proxy or a test server.
func WithBaseURL(url string) GeminiOption {
	return func(cfg *genai.ClientConfig) { cfg.HTTPOptions.BaseURL = url }
}

func NewGeminiClient(ctx context.Context, apiKey, model string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key required: %w", ErrNotConfigured)
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

// UnconfiguredGenerator stands in for the model when no API key is set, so
// the API still serves the summary half of /get_insights.
type UnconfiguredGenerator struct{}

func (UnconfiguredGenerator) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("gemini: %w", ErrNotConfigured)
}
