package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/algotutor.net/internal/adapter/file/quotafile"
	"gitlab.com/algotutor.net/internal/adapter/llm/gemini"
	"gitlab.com/algotutor.net/internal/adapter/llm/openai"
	"gitlab.com/algotutor.net/internal/adapter/nats/eventport"
	"gitlab.com/algotutor.net/internal/adapter/postgres/quotarepository"
	"gitlab.com/algotutor.net/internal/adapter/redis/quotaport"
	"gitlab.com/algotutor.net/internal/config"
	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/static/errs"
)

// setupQuotaStore opens the configured backend. The pruner is nil for backends
// that expire keys on their own.
func setupQuotaStore(ctx context.Context, cfg *config.AppConfig, logger primary.Logger) (secondary.QuotaStore, secondary.QuotaPruner, func(), error) {
	switch cfg.QuotaConfig.Backend {
	case config.QuotaBackendFile:
		store := quotafile.New(cfg.QuotaConfig.FilePath, logger)
		return store, store, func() {}, nil

	case config.QuotaBackendRedis:
		redisClient := setupRedis(cfg.RedisConfig)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			// the tracker fails open, an unreachable redis is not fatal
			logger.Warn("Redis not reachable", "addr", cfg.RedisConfig.Url, "error", err)
		}
		return quotaport.NewQuotaRepository(redisClient, logger), nil, func() { _ = redisClient.Close() }, nil

	case config.QuotaBackendPostgres:
		db, err := setupDatabase(ctx, cfg.PostgresConfig, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := quotarepository.NewQuotaRepository(db, cfg.PostgresConfig.Schema, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			// retried on the first query
			logger.Warn("Quota table not ready", "schema", cfg.PostgresConfig.Schema, "error", err)
		}
		return repo, repo, func() { _ = db.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", errs.UnknownQuotaBackend, cfg.QuotaConfig.Backend)
	}
}

// setupCompleter returns nil when the selected provider has no key, which puts
// generation and simulation into their not-configured mode
func setupCompleter(ctx context.Context, cfg *config.LLMConfig, logger primary.Logger) secondary.ChatCompleter {
	if cfg.APIKey() == "" {
		logger.Error("LLM API key not set, generation disabled", "provider", cfg.Provider)
		return nil
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to create Gemini client", "error", err)
			return nil
		}
		logger.Info("LLM client ready", "provider", client.Provider(), "model", cfg.GeminiModel)
		return client
	case config.ProviderOpenAI:
		logger.Info("LLM client ready", "provider", config.ProviderOpenAI, "model", cfg.OpenAIModel)
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		logger.Error("Unknown LLM provider, generation disabled", "provider", cfg.Provider)
		return nil
	}
}

func setupPublisher(cfg *config.NatsConfig, logger primary.Logger) (secondary.EventPublisher, func()) {
	if !cfg.Enabled() {
		return eventport.NopPublisher{}, func() {}
	}

	nc, err := eventport.Connect(cfg.Url)
	if err != nil {
		logger.Warn("NATS unavailable, solve events disabled", "url", cfg.Url, "error", err)
		return eventport.NopPublisher{}, func() {}
	}
	logger.Info("Publishing solve events", "subject", cfg.Subject)
	return eventport.NewPublisher(nc, cfg.Subject, logger), func() { _ = nc.Drain() }
}

// setupDatabase sets up the PostgreSQL connection. An unreachable server is
// only logged since the tracker fails open.
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig, logger primary.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		logger.Warn("PostgreSQL not reachable", "error", err)
	}

	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
