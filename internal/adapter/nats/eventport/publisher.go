// Package eventport publishes solve events on NATS
package eventport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/domain"
)

var (
	_ secondary.EventPublisher = (*Publisher)(nil)
	_ secondary.EventPublisher = NopPublisher{}
)

type conn interface {
	Publish(subject string, data []byte) error
}

type Publisher struct {
	nc      conn
	subject string
	logger  primary.Logger
}

// Connect dials NATS with a short timeout and bounded reconnects
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("algotutor"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return nc, nil
}

func NewPublisher(nc *nats.Conn, subject string, logger primary.Logger) *Publisher {
	return newPublisher(nc, subject, logger)
}

func newPublisher(nc conn, subject string, logger primary.Logger) *Publisher {
	return &Publisher{
		nc:      nc,
		subject: subject,
		logger:  logger,
	}
}

func (p *Publisher) PublishSolved(ctx context.Context, event *domain.SolveEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal solve event: %w", err)
	}

	if err := p.nc.Publish(p.subject, b); err != nil {
		p.logger.Error("Failed to publish solve event", "subject", p.subject, "error", err)
		return fmt.Errorf("failed to publish solve event: %w", err)
	}
	return nil
}

// NopPublisher is used when no NATS url is configured
type NopPublisher struct{}

func (NopPublisher) PublishSolved(context.Context, *domain.SolveEvent) error {
	return nil
}
