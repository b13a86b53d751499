// Package gemini adapts the Google GenAI SDK to the chat completion port
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/static/errs"
)

var _ secondary.ChatCompleter = (*Client)(nil)

const providerName = "gemini"

type Client struct {
	client *genai.Client
	model  string
}

type Option func(*genai.ClientConfig)

// WithBaseURL points the SDK at another endpoint
func WithBaseURL(url string) Option {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

func NewClient(ctx context.Context, apiKey, model string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errs.LLMNotConfigured
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
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Provider() string {
	return providerName
}

func (c *Client) Complete(ctx context.Context, req secondary.ChatRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.User), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errs.EmptyCompletion
	}
	return text, nil
}
