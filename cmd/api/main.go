// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yomira reader HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Set up tracing (opt-in).
//  4. Open the persisted library (backend, migrations, stores).
//  5. Build upstream clients (catalog, metadata) and the request proxy.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/yomira-reader/internal/api"
	"github.com/taibuivan/yomira-reader/internal/app"
	"github.com/taibuivan/yomira-reader/internal/catalog"
	"github.com/taibuivan/yomira-reader/internal/discover"
	"github.com/taibuivan/yomira-reader/internal/library/favorites"
	"github.com/taibuivan/yomira-reader/internal/library/recent"
	"github.com/taibuivan/yomira-reader/internal/library/settings"
	"github.com/taibuivan/yomira-reader/internal/metadata"
	"github.com/taibuivan/yomira-reader/internal/platform/config"
	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/otel"
	pgstore "github.com/taibuivan/yomira-reader/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-reader/internal/platform/redis"
	"github.com/taibuivan/yomira-reader/internal/proxy"
	"github.com/taibuivan/yomira-reader/internal/reader"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_backend", cfg.StoreBackend),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives for the whole process; cancelling it stops background sweepers.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Tracing ────────────────────────────────────────────────────────
	shutdownTracing, err := otel.Setup(startupCtx, constants.AppName, constants.AppVersion, cfg.OTelEndpoint)
	must(log, err, "set up tracing")
	defer func() {
		if terr := shutdownTracing(context.Background()); terr != nil {
			log.Error("tracing_shutdown_failed", slog.Any("error", terr))
		}
	}()

	// ── 4. Persisted Library ──────────────────────────────────────────────
	library, err := app.Open(startupCtx, cfg, log)
	must(log, err, "open library")
	defer library.Close()

	// ── 5. Upstreams ──────────────────────────────────────────────────────
	requestProxy, err := proxy.New(proxy.Config{
		APIUpstream:    cfg.CatalogUpstreamURL,
		ImageUpstream:  cfg.ImageUpstreamURL,
		TrustForwarded: cfg.TrustProxyHeaders,
	}, nil, log)
	must(log, err, "configure request proxy")

	catalogClient := catalog.NewClient(cfg.CatalogURL(), cfg.ImageProxyPrefix, nil)
	catalogService := catalog.NewService(catalogClient, log)

	metadataOptions := []metadata.Option{}
	if library.Redis != nil {
		metadataOptions = append(metadataOptions,
			metadata.WithCache(metadata.NewRedisCache(library.Redis, metadata.DefaultCacheTTL, log)))
	}
	metadataClient := metadata.NewClient(cfg.MetadataURL, log, metadataOptions...)

	sessions := reader.NewManager(catalogService, library.Recent, library.Settings, log)
	defer sessions.Shutdown()

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	var checks []api.HealthCheck
	if library.Pool != nil {
		checks = append(checks, api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
			return pgstore.Ping(ctx, library.Pool)
		}})
	}
	if library.Redis != nil {
		checks = append(checks, api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisstore.Ping(ctx, library.Redis)
		}})
	}
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{Checks: checks}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Proxy:     requestProxy,
		Catalog:   catalog.NewHandler(catalogService),
		Metadata:  metadata.NewHandler(metadataClient),
		Discover:  discover.NewHandler(discover.NewService(metadataClient, catalogClient, log)),
		Favorites: favorites.NewHandler(library.Favorites),
		Recent:    recent.NewHandler(library.Recent),
		Settings:  settings.NewHandler(library.Settings),
		Reader:    reader.NewHandler(sessions),
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
