package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadapter "donation-kiosk/internal/adapter/http"
	"donation-kiosk/internal/adapter/postgres"
	"donation-kiosk/internal/adapter/usecase"
	"donation-kiosk/internal/adapter/worker"
	"donation-kiosk/internal/config"
	"donation-kiosk/internal/db"
	"donation-kiosk/internal/metrics"
)

// main is the entry point of the kiosk administration service. It loads
// configuration, optionally runs database migrations and seeds demo data,
// wires the repositories, use cases and the sync retry queue, then starts
// the HTTP server. On receiving a termination signal it stops accepting
// requests, drains the sync queue and exits.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.NewLogger(os.Stdout, cfg.Env)

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String(), logger); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			return
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		return
	}
	defer pool.Close()

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded", slog.String("org_id", db.SeedOrgID))
		}
	}

	m := metrics.New()

	campaignRepo := postgres.NewCampaignRepository(pool)
	kioskRepo := postgres.NewKioskRepository(pool)
	donationRepo := postgres.NewDonationRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)

	dashboard := usecase.NewDashboardService(campaignRepo, kioskRepo, donationRepo, donationRepo, orgRepo,
		usecase.DashboardOptions{
			RecentLimit: cfg.Dashboard.RecentLimit,
			AmountUnit:  cfg.Dashboard.AmountUnit,
			CacheTTL:    cfg.Dashboard.CacheTTL,
			Alerts: usecase.AlertPolicy{
				InactiveAfter:  cfg.Dashboard.InactiveAfter,
				ExpiringWithin: cfg.Dashboard.ExpiringWithin,
			},
		}, logger, m)

	syncer := usecase.NewCampaignSync(campaignRepo, usecase.NewKioskSync(kioskRepo, logger, m, usecase.SyncOptions{
		MaxRetries:  cfg.Sync.MaxRetries,
		Concurrency: cfg.Sync.Concurrency,
	}))

	// The queue outlives request contexts; it stops on the signal context.
	queue := worker.NewSyncQueue(syncer, dashboard, worker.QueueOptions{
		Workers:     cfg.Sync.QueueWorkers,
		Size:        cfg.Sync.QueueSize,
		MaxAttempts: cfg.Sync.MaxAttempts,
		RetryDelay:  cfg.Sync.RetryDelay,
	}, logger, m)
	queue.Start(ctx)

	handler := httpadapter.NewHandler(httpadapter.Deps{
		Campaigns: usecase.NewCampaignUseCase(campaignRepo, syncer, queue, dashboard, logger),
		Kiosks:    usecase.NewKioskUseCase(kioskRepo, dashboard),
		Donations: usecase.NewDonationUseCase(donationRepo, dashboard),
		Dashboard: dashboard,
		Metrics:   promhttp.Handler(),
		RateLimit: cfg.HTTP.RateLimit,
		RateBurst: cfg.HTTP.RateBurst,
	}, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	exitCode = 0

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("server gracefully stopped")
	}
	queue.Wait()
}
