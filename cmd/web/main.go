package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/screwyprof/stakeview/pkg/logger"
	"github.com/screwyprof/stakeview/pkg/pgxdb"
	"github.com/screwyprof/stakeview/preload"
	"github.com/screwyprof/stakeview/preload/store/pgxstore"
	"github.com/screwyprof/stakeview/staking"
	"github.com/screwyprof/stakeview/web/config"
	"github.com/screwyprof/stakeview/web/handler"
)

var (
	version = "dev"
	date    = "unknown"
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

	log.InfoContext(ctx, "Stakeview Web API Service starting",
		slog.String("version", version),
		slog.String("date", date),
	)

	// Initialize database connection
	db, err := pgxdb.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.ErrorContext(ctx, "Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize snapshot store
	store, storeCloser := pgxstore.New(db)
	defer storeCloser()

	// The web service never talks to the chain: it follows snapshots the
	// preloader daemon persists, reloading them on an interval.
	network := preload.NetworkID(cfg.Network)
	cache := preload.NewReadCache(store)
	if err := cache.Bootstrap(ctx, network); err != nil {
		log.WarnContext(ctx, "Failed to bootstrap from persisted snapshot",
			slog.String("network", string(network)),
			slog.Any("error", err),
		)
	}

	reloader := preload.NewService(
		preload.StoreReloader{Cache: cache},
		[]preload.NetworkID{network},
		preload.WithRefreshInterval(cfg.ReloadInterval),
	)
	events, reloaderDone := reloader.Start(ctx)
	subCloser := preload.NewSubscriber(events,
		preload.OnRefreshError(func(event preload.RefreshError) {
			log.ErrorContext(ctx, "Snapshot reload failed",
				slog.String("network", string(event.Network)),
				slog.Any("error", event.Err),
			)
		}),
	)
	defer subCloser()

	// Wire the read-model over the cached snapshot
	dataStore := preload.NewDataStore(cache, network, preload.Snapshot{})
	unit := staking.Unit{Code: cfg.UnitCode, Magnitude: cfg.UnitMagnitude}
	finder := staking.NewBrowser(dataStore, unit)

	// Create HTTP server
	mux := http.NewServeMux()

	validatorsHandler := handler.NewStakingGetValidators(finder)
	validatorsHandler.AddRoutes(mux)

	// Wrap with logging middleware
	loggedMux := logger.NewMiddleware(log)(mux)

	// Create server address
	addr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)

	server := &http.Server{
		Addr:    addr,
		Handler: loggedMux,
	}

	// Start server in a goroutine
	go func() {
		log.InfoContext(ctx, "Server started", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.ErrorContext(ctx, "Server failed to start", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.InfoContext(ctx, "Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Server forced to shutdown", slog.Any("error", err))
		os.Exit(1)
	}

	<-reloaderDone
	log.InfoContext(ctx, "Server exited gracefully")
}
