package eventport

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/algotutor.net/internal/adapter/logging"
	"gitlab.com/algotutor.net/internal/domain"
)

type recordingConn struct {
	subject string
	data    []byte
	err     error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.subject = subject
	c.data = data
	return c.err
}

func TestPublishSolved(t *testing.T) {
	nc := &recordingConn{}
	p := newPublisher(nc, "algotutor.solve.completed", logging.NewNopLogger())

	event := &domain.SolveEvent{
		RequestID:    uuid.New(),
		Category:     domain.CategoryBFS,
		Language:     "Python",
		HasTestInput: true,
		Stage:        domain.StageResponded,
		DurationMs:   42,
		Timestamp:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishSolved(context.Background(), event))

	assert.Equal(t, "algotutor.solve.completed", nc.subject)
	var decoded domain.SolveEvent
	require.NoError(t, json.Unmarshal(nc.data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestPublishSolved_ConnectionClosed(t *testing.T) {
	p := newPublisher(&recordingConn{err: nats.ErrConnectionClosed}, "s", logging.NewNopLogger())

	err := p.PublishSolved(context.Background(), &domain.SolveEvent{})
	assert.True(t, errors.Is(err, nats.ErrConnectionClosed))
}

func TestPublishSolved_CancelledContext(t *testing.T) {
	nc := &recordingConn{}
	p := newPublisher(nc, "s", logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.PublishSolved(ctx, &domain.SolveEvent{}), context.Canceled)
	assert.Empty(t, nc.subject)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishSolved(context.Background(), &domain.SolveEvent{}))
}
