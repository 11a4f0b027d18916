// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - The request proxy runs as middleware ahead of routing, so /api/* and
    /image-proxy/* never reach the local route table.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/yomira-reader/internal/catalog"
	"github.com/taibuivan/yomira-reader/internal/discover"
	"github.com/taibuivan/yomira-reader/internal/library/favorites"
	"github.com/taibuivan/yomira-reader/internal/library/recent"
	"github.com/taibuivan/yomira-reader/internal/library/settings"
	"github.com/taibuivan/yomira-reader/internal/metadata"
	"github.com/taibuivan/yomira-reader/internal/platform/config"
	"github.com/taibuivan/yomira-reader/internal/platform/constants"
	"github.com/taibuivan/yomira-reader/internal/platform/middleware"
	"github.com/taibuivan/yomira-reader/internal/platform/otel"
	"github.com/taibuivan/yomira-reader/internal/proxy"
	"github.com/taibuivan/yomira-reader/internal/reader"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here and a mount in [NewServer].
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when every check passes.
	Readiness http.HandlerFunc

	// Proxy forwards /api/* and /image-proxy/* upstream.
	Proxy *proxy.Proxy

	// Catalog serves the browse lists, series, chapters, and pages.
	Catalog *catalog.Handler

	// Metadata serves search and lookups against the metadata service.
	Metadata *metadata.Handler

	// Discover resolves metadata searches against the catalog.
	Discover *discover.Handler

	// Favorites, Recent, and Settings expose the persisted library.
	Favorites *favorites.Handler
	Recent    *recent.Handler
	Settings  *settings.Handler

	// Reader manages open reading sessions.
	Reader *reader.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := NewRouter(context, cfg, log, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

/*
NewRouter builds the route table.

Middleware order:
 1. Request id, tracing, and structured logging wrap everything.
 2. Panic recovery, CORS, and rate limiting guard the proxy and local routes alike.
 3. The proxy intercepts its prefixes before routing.
 4. Local JSON routes get a request deadline; proxied image streams do not.
*/
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.Tracing(otel.Tracer(constants.AppName)))
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(context))
	r.Use(h.Proxy.Middleware)
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Local JSON surface.
	r.Group(func(local chi.Router) {
		local.Use(chimw.Timeout(constants.GlobalRequestTimeout))

		local.Mount("/catalog", h.Catalog.Routes())
		local.Mount("/metadata", h.Metadata.Routes())
		local.Mount("/discover", h.Discover.Routes())
		local.Mount("/library/favorites", h.Favorites.Routes())
		local.Mount("/library/recent", h.Recent.Routes())
		local.Mount("/library/settings", h.Settings.Routes())
		local.Mount("/reader/sessions", h.Reader.Routes())
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
