package solve

import (
	"context"

	"gitlab.com/algotutor.net/internal/domain"
)

// ISolveService runs one submission through classification, generation,
// simulation and execution
type ISolveService interface {
	// Solve always returns a result; failures are reported in ErrorMessage
	Solve(ctx context.Context, req *domain.SolveRequest) *domain.SolveResult

	// Quota reports today's execution usage
	Quota(ctx context.Context) (domain.QuotaUsage, error)

	// Categories lists the algorithms a canonical skeleton exists for
	Categories() []domain.Category
}
