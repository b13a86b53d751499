package secondary

import (
	"context"

	"gitlab.com/algotutor.net/internal/domain"
)

type CodeExecutor interface {
	// Configured reports whether provider credentials are present
	Configured() bool

	// Execute runs a script remotely and returns the provider's reply
	Execute(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResponse, error)
}
