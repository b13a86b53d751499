package quota

import (
	"context"

	"gitlab.com/algotutor.net/internal/domain"
)

// IQuotaService enforces the daily execution budget
type IQuotaService interface {
	// TryConsume takes one unit of today's budget. It returns false only when the
	// budget is known to be exhausted; store failures let the call through.
	TryConsume(ctx context.Context) bool

	// Usage reports today's usage without consuming anything
	Usage(ctx context.Context) (domain.QuotaUsage, error)
}
