// Package jdoodle executes scripts through the JDoodle compiler API
package jdoodle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gitlab.com/algotutor.net/internal/config"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/domain"
	"gitlab.com/algotutor.net/internal/static/errs"
)

var _ secondary.CodeExecutor = (*Client)(nil)

type Client struct {
	clientID     string
	clientSecret string
	url          string
	httpClient   *http.Client
}

func NewClient(cfg *config.JDoodleConfig) *Client {
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		url:          cfg.URL,
		httpClient:   &http.Client{},
	}
}

func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// Execute fills in the credentials and posts the script. The reply body is
// decoded whatever the status, JDoodle reports failures in it.
func (c *Client) Execute(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResponse, error) {
	if !c.Configured() {
		return nil, errs.ExecutorNotConfigured
	}

	payload := *req
	payload.ClientID = c.clientID
	payload.ClientSecret = c.clientSecret

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result domain.ExecutionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w %d", errs.ProviderStatus, resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.StatusCode == 0 {
		result.StatusCode = resp.StatusCode
	}

	return &result, nil
}
