package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/static/errs"
)

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "gemini-2.0-flash")
	assert.ErrorIs(t, err, errs.LLMNotConfigured)
}

func TestComplete_GenerateContent(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"42"}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", "gemini-2.0-flash", WithBaseURL(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "gemini", c.Provider())

	out, err := c.Complete(context.Background(), secondary.ChatRequest{
		System: "sys", User: "what is six times seven", MaxTokens: 500, Temperature: 0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", out)

	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "generationConfig")
}

func TestComplete_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", "gemini-2.0-flash", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), secondary.ChatRequest{User: "u"})
	assert.ErrorIs(t, err, errs.EmptyCompletion)
}
