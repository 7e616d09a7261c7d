// API server entry point for ADR-Intelligence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamotph/adr-intelligence/internal/application/analytics"
	"github.com/gamotph/adr-intelligence/internal/config"
	"github.com/gamotph/adr-intelligence/internal/domain/vocabulary"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/postgres"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/redis"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/gamotph/adr-intelligence/internal/intelligence/adr_ner"
	"github.com/gamotph/adr-intelligence/internal/intelligence/common"
	httpserver "github.com/gamotph/adr-intelligence/internal/interfaces/http"
	"github.com/gamotph/adr-intelligence/internal/interfaces/http/handlers"
	"github.com/gamotph/adr-intelligence/internal/normalization"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(buildLogConfig(cfg.Log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting ADR-Intelligence API server",
		logging.String("version", config.Version),
		logging.Int("port", cfg.Server.Port),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	// Vocabulary lists are mandatory; without the reaction list every
	// normalization result would be empty.
	vocab := vocabulary.NewStore(cfg.Vocabulary, logger)
	if err := vocab.EnsureLoaded(); err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()

	if cfg.Database.MigrationPath != "" {
		if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	var cache redis.Cache
	readinessChecks := []handlers.ReadinessCheck{
		{Name: "postgres", Check: conn.HealthCheck},
	}
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()

		cache = redis.NewRedisCache(redisClient, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
		)
		readinessChecks = append(readinessChecks, handlers.ReadinessCheck{
			Name: "redis", Check: redisClient.Ping,
		})
	}

	var extractor adr_ner.Extractor
	if cfg.NER.Enabled {
		backend := common.NewHTTPBackend(cfg.NER.Endpoint, cfg.NER.Timeout)
		defer backend.Close()
		extractor = adr_ner.NewModelExtractor(backend, cfg.NER.ModelID, cfg.NER.MaxSequenceLength, logger)
		readinessChecks = append(readinessChecks, handlers.ReadinessCheck{
			Name: "ner", Check: backend.Healthy,
		})
	}

	collector := prometheus.NewCollector(prometheus.CollectorConfig{
		Namespace:            "adr",
		EnableGoMetrics:      true,
		EnableProcessMetrics: true,
	})
	metrics := prometheus.NewAppMetrics(collector)

	reportRepo := repositories.NewPostgresReportRepo(conn, logger)
	medicineRepo := repositories.NewPostgresMedicineRepo(conn, logger)

	reactions := normalization.NewReactionNormalizer(vocab)
	cleaner := analytics.NewCleaningService(
		reactions,
		extractor,
		analytics.UnmatchedPolicy(cfg.Analytics.UnmatchedPolicy),
		cfg.Analytics.ReactionThreshold,
		cfg.Analytics.ReactionListThreshold,
		metrics,
		logger,
	)
	medNorm := normalization.NewMedicineNormalizer(vocab)
	analyticsSvc := analytics.NewService(reportRepo, medicineRepo, cleaner, medNorm, cfg.Analytics.MedicineThreshold, logger)

	analyticsHandler := handlers.NewAnalyticsHandler(analyticsSvc, cleaner, cache, cfg.Redis.DefaultTTL, logger)
	healthHandler := handlers.NewHealthHandler(config.Version, readinessChecks, logger)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnalyticsHandler: analyticsHandler,
		HealthHandler:    healthHandler,
		Logger:           logger,
		MetricsCollector: collector,
		Metrics:          metrics,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("received shutdown signal", logging.String("signal", sig.String()))
	}

	if err := server.Stop(context.Background()); err != nil {
		return err
	}
	return <-errCh
}

// buildLogConfig maps the config section onto the logging package's own
// settings struct.
func buildLogConfig(cfg config.LogConfig) logging.LogConfig {
	return logging.LogConfig{
		Level:            cfg.Level,
		Format:           cfg.Format,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: cfg.ErrorOutputPaths,
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: config file %s not found, using environment and defaults\n", path)
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
