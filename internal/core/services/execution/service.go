package execution

import (
	"context"

	"gitlab.com/algotutor.net/internal/domain"
)

// IExecutionService runs generated code on the remote executor under the daily quota
type IExecutionService interface {
	Execute(ctx context.Context, code, language, testInput string) domain.ExecutionOutcome
}
