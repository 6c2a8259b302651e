package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	distributionengine "almoner/contexts/relief-operations/distribution-engine"
	enginepostgres "almoner/contexts/relief-operations/distribution-engine/adapters/postgres"
	workerapp "almoner/contexts/relief-operations/distribution-engine/application/workers"
	registryservice "almoner/contexts/relief-operations/registry-service"
	registrypostgres "almoner/contexts/relief-operations/registry-service/adapters/postgres"
	reportingservice "almoner/contexts/relief-operations/reporting-service"
	reportingpostgres "almoner/contexts/relief-operations/reporting-service/adapters/postgres"
	"almoner/internal/platform/config"
	"almoner/internal/platform/db"
	"almoner/internal/platform/httpserver"
	"almoner/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	engineRepo := enginepostgres.NewRepository(pg.DB, cfg.LockWaitTimeout, logger)
	engineModule := distributionengine.NewModule(distributionengine.Dependencies{
		References: engineRepo,
		Log:        engineRepo,
		Ledger:     engineRepo,
		Clock:      enginepostgres.SystemClock{},
		IDGen:      enginepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	registryModule := registryservice.NewModule(registryservice.Dependencies{
		Repo:   registrypostgres.NewRepository(pg.DB),
		Clock:  registrypostgres.SystemClock{},
		IDGen:  registrypostgres.UUIDGenerator{},
		Logger: logger,
	})

	reportingModule := reportingservice.NewModule(reportingservice.Dependencies{
		ReadModel: reportingpostgres.NewReadModel(pg.DB),
		Clock:     reportingpostgres.SystemClock{},
		Logger:    logger,
	})

	server := httpserver.New(
		engineModule,
		registryModule,
		reportingModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
		cfg.EnableSwagger,
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	engineRepo := enginepostgres.NewRepository(pg.DB, cfg.LockWaitTimeout, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    engineRepo,
			Publisher: bus,
			Clock:     enginepostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
