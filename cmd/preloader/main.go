package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/screwyprof/stakeview/cmd/preloader/config"
	"github.com/screwyprof/stakeview/migrator"
	"github.com/screwyprof/stakeview/pkg/lcd"
	"github.com/screwyprof/stakeview/pkg/logger"
	"github.com/screwyprof/stakeview/pkg/pgxdb"
	"github.com/screwyprof/stakeview/preload"
	"github.com/screwyprof/stakeview/preload/store/pgxstore"
)

func main() {
	// Load configuration
	cfg := config.New()

	// Initialize logger and set as default
	log := logger.NewFromConfig(logger.Config{
		LogLevel:         cfg.LogLevel,
		LogHumanFriendly: cfg.LogHumanFriendly,
	})
	slog.SetDefault(log)

	// Prepare context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	db, err := pgxdb.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.ErrorContext(ctx, "Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Apply migrations
	log.InfoContext(ctx, "Applying database migrations")
	if err := migrator.ApplyMigrations(db, cfg.MigrationsDir); err != nil {
		log.ErrorContext(ctx, "Failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize snapshot store
	store, storeCloser := pgxstore.New(db)
	defer storeCloser()

	// HTTP client & chain REST client
	httpClient := &http.Client{Timeout: cfg.HttpClientTimeout}
	lcdClient := lcd.NewClient(httpClient, cfg.LCDBaseURL)
	fetcher := preload.NewValidatorFetcher(lcdClient, cfg.ValidatorsLimit)

	// Preload cache over the fetcher and the store
	cache := preload.NewCache(fetcher, store)

	networks := make([]preload.NetworkID, len(cfg.Networks))
	for i, network := range cfg.Networks {
		networks[i] = preload.NetworkID(network)
	}

	// Warm the cache from persisted snapshots so stale data is served while
	// the first refresh is in flight
	for _, network := range networks {
		if err := cache.Bootstrap(ctx, network); err != nil {
			log.WarnContext(ctx, "Failed to bootstrap from persisted snapshot",
				slog.String("network", string(network)),
				slog.Any("error", err),
			)
		}
	}

	// Initial refresh across all networks
	log.InfoContext(ctx, "Preparing initial snapshots", slog.Int("networks", len(networks)))
	if err := cache.PrepareAll(ctx, networks...); err != nil {
		log.WarnContext(ctx, "Initial refresh incomplete, serving persisted snapshots",
			slog.Any("error", err),
		)
	}

	// Create refresh service
	service := preload.NewService(
		cache,
		networks,
		preload.WithRefreshInterval(cfg.RefreshInterval),
		preload.WithMaxAttempts(cfg.MaxAttempts),
	)

	// Start service
	log.InfoContext(ctx, "Starting preload refresh service",
		slog.Duration("refreshInterval", cfg.RefreshInterval),
		slog.Int("maxAttempts", cfg.MaxAttempts),
	)
	events, done := service.Start(ctx)

	// Subscribe to events for logging
	subCloser := setupEventLogging(ctx, events, log)
	defer subCloser()

	// Wait for shutdown
	<-done
	log.InfoContext(ctx, "Preload service stopped gracefully")
}

// setupEventLogging configures event handlers using slog directly
func setupEventLogging(ctx context.Context, events <-chan preload.Event, log *slog.Logger) func() {
	return preload.NewSubscriber(events,
		preload.OnRefreshStarted(func(event preload.RefreshStarted) {
			log.InfoContext(ctx, "Refresh started",
				slog.String("network", string(event.Network)),
				slog.String("startedAt", event.StartedAt.Format(logger.BritishTimeFormat)),
			)
		}),
		preload.OnRefreshCompleted(func(event preload.RefreshCompleted) {
			log.InfoContext(ctx, "Refresh completed",
				slog.String("network", string(event.Network)),
				slog.Duration("duration", event.Duration),
			)
		}),
		preload.OnRefreshError(func(event preload.RefreshError) {
			log.ErrorContext(ctx, "Refresh attempt failed",
				slog.String("network", string(event.Network)),
				slog.Int("attempt", event.Attempt),
				slog.Any("error", event.Err),
			)
		}),
		preload.OnPollingStarted(func(event preload.PollingStarted) {
			log.InfoContext(ctx, "Polling started",
				slog.Duration("interval", event.Interval),
			)
		}),
		preload.OnPollingShutdown(func(event preload.PollingShutdown) {
			log.InfoContext(ctx, "Polling stopped",
				slog.String("reason", event.Reason.Error()),
			)
		}),
	)
}
