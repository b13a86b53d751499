package quotaport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
)

const (
	quotaKeyPrefix  = "quota:jdoodle:"
	quotaExpiration = 48 * time.Hour
)

// consumeScript returns the new count, or -1 when the limit was already reached
var consumeScript = redis.NewScript(`
local used = tonumber(redis.call('GET', KEYS[1]) or '0')
if used >= tonumber(ARGV[1]) then
  return -1
end
used = redis.call('INCR', KEYS[1])
redis.call('EXPIRE', KEYS[1], ARGV[2])
return used
`)

var _ secondary.QuotaStore = (*QuotaRepository)(nil)

// QuotaRepository keeps one counter key per day; keys expire on their own
type QuotaRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewQuotaRepository creates a new Redis quota repository
func NewQuotaRepository(redisClient *redis.Client, logger primary.Logger) *QuotaRepository {
	return &QuotaRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func quotaKey(day string) string {
	return fmt.Sprintf("%s%s", quotaKeyPrefix, day)
}

// Consume runs the check-and-increment as a single Lua script
func (r *QuotaRepository) Consume(ctx context.Context, day string, limit int) (int, bool, error) {
	key := quotaKey(day)
	res, err := consumeScript.Run(ctx, r.redisClient, []string{key}, limit, int(quotaExpiration.Seconds())).Int64()
	if err != nil {
		r.logger.Error("Failed to consume quota", "key", key, "error", err)
		return 0, false, fmt.Errorf("failed to consume quota: %w", err)
	}

	if res < 0 {
		used, err := r.Used(ctx, day)
		if err != nil {
			return limit, false, nil
		}
		return used, false, nil
	}
	return int(res), true, nil
}

// Used retrieves the counter for a day
func (r *QuotaRepository) Used(ctx context.Context, day string) (int, error) {
	used, err := r.redisClient.Get(ctx, quotaKey(day)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		r.logger.Error("Failed to get quota usage", "day", day, "error", err)
		return 0, fmt.Errorf("failed to get quota usage: %w", err)
	}
	return used, nil
}
