package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	platformstatusservice "squpe/contexts/internal-ops/platform-status-service"
	campaignservice "squpe/contexts/social-impact/campaign-service"
	campaignpostgres "squpe/contexts/social-impact/campaign-service/adapters/postgres"
	campaignworkers "squpe/contexts/social-impact/campaign-service/application/workers"
	livestreamservice "squpe/contexts/social-impact/livestream-service"
	livestreampostgres "squpe/contexts/social-impact/livestream-service/adapters/postgres"
	livestreamworkers "squpe/contexts/social-impact/livestream-service/application/workers"
	"squpe/internal/platform/config"
	"squpe/internal/platform/db"
	"squpe/internal/platform/httpserver"
	"squpe/internal/platform/identity"
	"squpe/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres         *db.Postgres
	campaignRelay    campaignworkers.OutboxRelay
	livestreamRelay  livestreamworkers.OutboxRelay
	donationConsumer *campaignworkers.DonationReceiptConsumer
	pollInterval     time.Duration
	logger           *slog.Logger
}

// BuildAPI wires the demo API. Without POSTGRES_DSN it runs entirely on
// the in-memory stores, matching how the service is demoed to clients.
func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var (
		pg          *db.Postgres
		campaigns   campaignservice.Module
		livestreams livestreamservice.Module
		status      platformstatusservice.Module
	)

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}

		campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
		campaigns = campaignservice.NewModule(campaignservice.Dependencies{
			Campaigns:    campaignRepo,
			Outbox:       campaignRepo,
			Clock:        campaignpostgres.SystemClock{},
			IDGenerator:  campaignpostgres.PrefixedIDGenerator{},
			ShareBaseURL: cfg.PublicBaseURL,
			Logger:       logger,
		})

		livestreamRepo := livestreampostgres.NewRepository(pg.DB, logger)
		livestreams = livestreamservice.NewModule(livestreamservice.Dependencies{
			Streams:       livestreamRepo,
			Outbox:        livestreamRepo,
			Clock:         livestreampostgres.SystemClock{},
			IDGenerator:   livestreampostgres.PrefixedIDGenerator{},
			StreamBaseURL: cfg.StreamBaseURL,
			RTMPIngestURL: cfg.RTMPIngestURL,
			Logger:        logger,
		})

		status = platformstatusservice.NewModule(platformstatusservice.Dependencies{
			Fundraising: campaignRepo,
			Broadcast:   livestreamRepo,
			Clock:       campaignpostgres.SystemClock{},
			Logger:      logger,
		})
	} else {
		campaigns = campaignservice.NewInMemoryModule(nil, cfg.PublicBaseURL, logger)
		livestreams = livestreamservice.NewInMemoryModule(nil, cfg.StreamBaseURL, cfg.RTMPIngestURL, logger)
		status = platformstatusservice.NewModule(platformstatusservice.Dependencies{
			Fundraising: campaigns.Store,
			Broadcast:   livestreams.Store,
			Clock:       campaigns.Store,
			Logger:      logger,
		})
	}

	server := httpserver.New(
		campaigns,
		livestreams,
		status,
		identity.NewDemoResolver(),
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

// BuildWorker requires postgres: the relays drain the shared outbox
// tables, which the in-memory stores cannot provide across processes.
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
	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	livestreamRepo := livestreampostgres.NewRepository(pg.DB, logger)

	app := &WorkerApp{
		postgres: pg,
		campaignRelay: campaignworkers.OutboxRelay{
			Outbox:    campaignRepo,
			Publisher: bus,
			Clock:     campaignpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		livestreamRelay: livestreamworkers.OutboxRelay{
			Outbox:    livestreamRepo,
			Publisher: bus,
			Clock:     livestreampostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}
	if cfg.EnableDonationConsumer {
		app.donationConsumer = &campaignworkers.DonationReceiptConsumer{
			Subscriber: bus,
			Logger:     logger,
		}
	}
	return app, nil
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
	if w.donationConsumer != nil {
		if err := w.donationConsumer.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.campaignRelay.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.livestreamRelay.RunOnce(ctx); err != nil {
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
		return ":8000"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
