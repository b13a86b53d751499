package secondary

import "context"

// ChatRequest is a single system+user exchange with a chat model
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// ChatCompleter is implemented by every LLM provider adapter
type ChatCompleter interface {
	// Complete returns the first choice's message content
	Complete(ctx context.Context, req ChatRequest) (string, error)

	// Provider names the backing service, used for logs and metrics
	Provider() string
}
