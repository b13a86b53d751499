package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gitlab.com/algotutor.net/internal/adapter/jdoodle"
	"gitlab.com/algotutor.net/internal/adapter/logging"
	"gitlab.com/algotutor.net/internal/adapter/metrics"
	"gitlab.com/algotutor.net/internal/config"
	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/services/classifier"
	"gitlab.com/algotutor.net/internal/core/services/execution"
	"gitlab.com/algotutor.net/internal/core/services/generation"
	"gitlab.com/algotutor.net/internal/core/services/quota"
	"gitlab.com/algotutor.net/internal/core/services/simulation"
	"gitlab.com/algotutor.net/internal/core/services/solve"
	"gitlab.com/algotutor.net/internal/core/services/template"
	http2 "gitlab.com/algotutor.net/internal/http"
	"gitlab.com/algotutor.net/internal/schedulerengine"
)

const serviceName = "algotutor"

func main() {
	envErr := InitReader()

	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(sysCfg.DebugMode).With("service", serviceName)
	defer logger.Sync()

	if envErr != nil {
		logger.Warn("Env file not loaded, using process environment", "error", envErr)
	}
	logger.Info("Starting algorithm tutor service", "debug", sysCfg.DebugMode, "port", sysCfg.HTTPPort)
	logCredentials(sysCfg, logger)

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ctxBg, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := metrics.NewPrometheusRecorder()

	// SECONDARY PORTS
	store, pruner, closeStore, err := setupQuotaStore(ctxBg, sysCfg, logger)
	if err != nil {
		logger.Error("Failed to set up quota store", "backend", sysCfg.QuotaConfig.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	completer := setupCompleter(ctxBg, sysCfg.LLMConfig, logger)
	publisher, closePublisher := setupPublisher(sysCfg.NatsConfig, logger)
	defer closePublisher()

	templates, err := template.NewTemplateStore()
	if err != nil {
		logger.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	//services
	quotaSvc := quota.NewQuotaTracker(store, sysCfg.QuotaConfig.DailyLimit, logger, recorder)
	solveSvc := solve.NewSolveService(solve.Dependencies{
		Classifier: classifier.NewClassifierService(logger),
		Templates:  templates,
		Generation: generation.NewGenerationService(completer, sysCfg.LLMConfig.Timeout, logger, recorder),
		Simulation: simulation.NewSimulationService(completer, sysCfg.LLMConfig.Timeout, logger, recorder),
		Execution: execution.NewExecutionService(
			jdoodle.NewClient(sysCfg.JDoodleConfig), quotaSvc, sysCfg.JDoodleConfig.Timeout, logger),
		Quota:     quotaSvc,
		Publisher: publisher,
		Metrics:   recorder,
		Logger:    logger,
	}, sysCfg.MaxDescriptionLength)

	//server
	serviceProvider := http2.NewServiceProvider(solveSvc, recorder.Handler())
	httpServer := http2.NewServer(sysCfg.HTTPPort, serviceName, *serviceProvider, writeTimeout(sysCfg), logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	serverErr := httpServer.Start()

	janitor := schedulerengine.NewQuotaJanitor(sysCfg.QuotaConfig, pruner, logger)
	janitor.StartQuotaJanitor(ctxBg)

	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server stopped unexpectedly", "error", err)
		}
	}
	logger.Info("Shutting down server...")

	cancel()
	janitor.Wait()

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := httpServer.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// writeTimeout leaves room for generation, simulation and execution in sequence
func writeTimeout(cfg *config.AppConfig) time.Duration {
	return 2*cfg.LLMConfig.Timeout + cfg.JDoodleConfig.Timeout + 15*time.Second
}

// logCredentials reports which credentials are present, never their values
func logCredentials(cfg *config.AppConfig, logger primary.Logger) {
	logger.Info("Credentials",
		"llm_provider", cfg.LLMConfig.Provider,
		"llm_key_present", cfg.LLMConfig.APIKey() != "",
		"jdoodle_credentials_present", cfg.JDoodleConfig.HasCredentials(),
		"quota_backend", cfg.QuotaConfig.Backend,
		"nats_enabled", cfg.NatsConfig.Enabled(),
	)
}

// InitReader loads <env>.env when an environment name is given, .env otherwise.
// A missing file is not fatal; the process environment still applies.
func InitReader() error {
	file := ".env"
	if len(os.Args) >= 2 && os.Args[1] != "" {
		file = os.Args[1] + ".env"
	}
	return godotenv.Load(file)
}
