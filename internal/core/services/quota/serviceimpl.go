package quota

import (
	"context"
	"sync"
	"time"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/domain"
)

var _ IQuotaService = (*QuotaTracker)(nil)

// QuotaTracker fails open: when the store cannot be read or written the call is
// allowed and the error logged. Exhaustion is a soft limit, a broken store must not
// take execution down with it.
type QuotaTracker struct {
	mu      sync.Mutex
	store   secondary.QuotaStore
	limit   int
	now     func() time.Time
	logger  primary.Logger
	metrics secondary.MetricsRecorder
}

type Option func(*QuotaTracker)

// WithClock overrides the wall clock used to derive the date key
func WithClock(now func() time.Time) Option {
	return func(t *QuotaTracker) {
		t.now = now
	}
}

func NewQuotaTracker(
	store secondary.QuotaStore,
	dailyLimit int,
	logger primary.Logger,
	metrics secondary.MetricsRecorder,
	opts ...Option,
) *QuotaTracker {
	t := &QuotaTracker{
		store:   store,
		limit:   dailyLimit,
		now:     time.Now,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *QuotaTracker) today() string {
	return domain.DateKey(t.now())
}

func (t *QuotaTracker) TryConsume(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	day := t.today()
	used, ok, err := t.store.Consume(ctx, day, t.limit)
	if err != nil {
		t.logger.Error("Quota check failed, allowing execution", "day", day, "error", err)
		t.metrics.ObserveQuota(domain.QuotaFailOpen)
		return true
	}

	if !ok {
		t.logger.Warn("JDoodle quota exhausted", "day", day, "used", used, "limit", t.limit)
		t.metrics.ObserveQuota(domain.QuotaDenied)
		return false
	}

	t.logger.Info("JDoodle quota consumed", "day", day, "used", used, "limit", t.limit)
	t.metrics.ObserveQuota(domain.QuotaAllowed)
	return true
}

func (t *QuotaTracker) Usage(ctx context.Context) (domain.QuotaUsage, error) {
	day := t.today()
	used, err := t.store.Used(ctx, day)
	if err != nil {
		return domain.NewQuotaUsage(day, 0, t.limit), err
	}
	return domain.NewQuotaUsage(day, used, t.limit), nil
}
