// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app owns the long-lived state shared by the server and the operator CLI.

It selects the persisted-state backend from configuration, opens the three
library stores against it, and keeps the connections that must be closed on
exit. Nothing here is global: each process builds one [App] and passes its
stores down by constructor injection.
*/
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-reader/internal/library/favorites"
	"github.com/taibuivan/yomira-reader/internal/library/recent"
	"github.com/taibuivan/yomira-reader/internal/library/settings"
	"github.com/taibuivan/yomira-reader/internal/platform/config"
	"github.com/taibuivan/yomira-reader/internal/platform/filesystem"
	"github.com/taibuivan/yomira-reader/internal/platform/migration"
	"github.com/taibuivan/yomira-reader/internal/platform/persist"
	pgstore "github.com/taibuivan/yomira-reader/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-reader/internal/platform/redis"
)

// App is the container of persisted library state.
type App struct {
	Registry  *persist.Registry
	Favorites *favorites.Store
	Recent    *recent.Store
	Settings  *settings.Store

	// Redis is set when REDIS_URL is configured, whatever the store backend.
	Redis *goredis.Client

	// Pool is set for the postgres backend.
	Pool *pgxpool.Pool

	logger  *slog.Logger
	closers []func()
}

/*
Open connects the configured backend and loads the library stores.

Steps:
 1. Connect Redis when configured (state backend or metadata cache).
 2. For postgres: run migrations, then open the pool.
 3. Build the backend and open favorites, recent, and settings.

On error every connection opened so far is closed.
*/
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{logger: logger}

	if cfg.RedisURL != "" {
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, fmt.Errorf("app: connect redis: %w", err)
		}
		app.Redis = client
		app.OnClose("redis", func() error { return client.Close() })
	}

	backend, err := app.backend(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Registry = persist.NewRegistry(backend, logger)

	if app.Favorites, err = favorites.NewStore(ctx, app.Registry); err != nil {
		app.Close()
		return nil, err
	}
	if app.Recent, err = recent.NewStore(ctx, app.Registry, nil); err != nil {
		app.Close()
		return nil, err
	}
	if app.Settings, err = settings.NewStore(ctx, app.Registry); err != nil {
		app.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "library_opened",
		slog.String("backend", cfg.StoreBackend),
		slog.Any("keys", app.Registry.Keys()),
	)
	return app, nil
}

func (app *App) backend(ctx context.Context, cfg *config.Config) (persist.Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return persist.NewMemoryBackend(), nil

	case config.BackendFile:
		return persist.NewFileBackend(filesystem.OS(), cfg.StoreDir), nil

	case config.BackendRedis:
		if app.Redis == nil {
			return nil, fmt.Errorf("app: %s backend needs REDIS_URL", config.BackendRedis)
		}
		return persist.NewRedisBackend(app.Redis), nil

	case config.BackendPostgres:
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, app.logger); err != nil {
			return nil, fmt.Errorf("app: migrate: %w", err)
		}
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, app.logger)
		if err != nil {
			return nil, fmt.Errorf("app: connect postgres: %w", err)
		}
		app.Pool = pool
		app.OnClose("postgres", func() error { pool.Close(); return nil })
		return persist.NewPostgresBackend(pool), nil
	}

	return nil, fmt.Errorf("app: unknown store backend %q", cfg.StoreBackend)
}

// NewInMemory builds an App on the memory backend, for tests and dry runs.
func NewInMemory(ctx context.Context, logger *slog.Logger) (*App, error) {
	return Open(ctx, &config.Config{StoreBackend: config.BackendMemory}, logger)
}

// OnClose registers a cleanup that [App.Close] runs, latest first.
func (app *App) OnClose(name string, close func() error) {
	app.closers = append(app.closers, func() {
		app.logger.Info("closing_connection", slog.String("dependency", name))
		if err := close(); err != nil {
			app.logger.Error("close_failed", slog.String("dependency", name), slog.Any("error", err))
		}
	})
}

// Close releases connections in reverse order of opening. Safe to call twice.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
}
