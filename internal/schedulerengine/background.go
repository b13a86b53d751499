package schedulerengine

import (
	"context"
	"sync"
	"time"

	"gitlab.com/algotutor.net/internal/config"
	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/domain"
)

// QuotaJanitor periodically drops quota days older than the retention window
type QuotaJanitor struct {
	QuotaCfg *config.QuotaConfig
	pruner   secondary.QuotaPruner
	logger   primary.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewQuotaJanitor(
	QuotaCfg *config.QuotaConfig,
	pruner secondary.QuotaPruner,
	logger primary.Logger,
) *QuotaJanitor {
	return &QuotaJanitor{
		QuotaCfg: QuotaCfg,
		pruner:   pruner,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled reports whether retention is configured and the store supports pruning
func (j *QuotaJanitor) Enabled() bool {
	return j.pruner != nil && j.QuotaCfg.RetentionDays > 0 && j.QuotaCfg.PruneInterval > 0
}

// StartQuotaJanitor prunes once, then on every tick until ctx is cancelled
func (j *QuotaJanitor) StartQuotaJanitor(ctx context.Context) {
	if !j.Enabled() {
		j.logger.Info("Quota janitor disabled")
		return
	}

	ticker := time.NewTicker(j.QuotaCfg.PruneInterval)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer ticker.Stop()

		j.PruneExpired(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.PruneExpired(ctx)
			}
		}
	}()
}

// Wait blocks until the janitor goroutine has returned
func (j *QuotaJanitor) Wait() {
	j.wg.Wait()
}

// PruneExpired removes every day before today minus the retention window
func (j *QuotaJanitor) PruneExpired(ctx context.Context) {
	cutoff := domain.DateKey(j.now().AddDate(0, 0, -j.QuotaCfg.RetentionDays))

	removed, err := j.pruner.Prune(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to prune quota records", "before", cutoff, "error", err)
		return
	}
	if removed > 0 {
		j.logger.Info("Pruned quota records", "before", cutoff, "removed", removed)
	}
}
