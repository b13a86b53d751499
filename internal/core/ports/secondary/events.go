package secondary

import (
	"context"

	"gitlab.com/algotutor.net/internal/domain"
)

type EventPublisher interface {
	PublishSolved(ctx context.Context, event *domain.SolveEvent) error
}
