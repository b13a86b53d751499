package config

import "time"

const (
	QuotaBackendFile     = "file"
	QuotaBackendRedis    = "redis"
	QuotaBackendPostgres = "postgres"
)

type QuotaConfig struct {
	Backend       string
	DailyLimit    int
	FilePath      string
	RetentionDays int
	PruneInterval time.Duration
}

func NewQuotaConfig() *QuotaConfig {
	return &QuotaConfig{
		Backend:       getEnv("QUOTA_BACKEND", QuotaBackendFile),
		DailyLimit:    getIntEnv("JDOODLE_DAILY_LIMIT", 200),
		FilePath:      getEnv("QUOTA_FILE", "code/jdoodle_quota.json"),
		RetentionDays: getIntEnv("QUOTA_RETENTION_DAYS", 0),
		PruneInterval: getSecondsEnv("QUOTA_PRUNE_INTERVAL_SEC", 3600),
	}
}
