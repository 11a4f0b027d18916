// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/api"
	"github.com/taibuivan/yomira-reader/internal/catalog"
	"github.com/taibuivan/yomira-reader/internal/discover"
	"github.com/taibuivan/yomira-reader/internal/library/favorites"
	"github.com/taibuivan/yomira-reader/internal/library/recent"
	"github.com/taibuivan/yomira-reader/internal/library/settings"
	"github.com/taibuivan/yomira-reader/internal/metadata"
	"github.com/taibuivan/yomira-reader/internal/platform/config"
	"github.com/taibuivan/yomira-reader/internal/platform/persist"
	"github.com/taibuivan/yomira-reader/internal/proxy"
	"github.com/taibuivan/yomira-reader/internal/reader"
)

const hotSeries = `{"results":[{"anime_name":"Hot One","image_src":"h.jpg","source_id":"hot-1"}]}`

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/hot-series":
			writer.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(writer, hotSeries)
		default:
			http.NotFound(writer, request)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newRouter(t *testing.T, checks ...api.HealthCheck) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	upstream := newUpstream(t)

	cfg := &config.Config{ServerPort: "0", Environment: "development"}

	requestProxy, err := proxy.New(proxy.Config{APIUpstream: upstream.URL, ImageUpstream: upstream.URL}, nil, logger)
	require.NoError(t, err)

	registry := persist.NewRegistry(persist.NewMemoryBackend(), logger)
	favoriteStore, err := favorites.NewStore(ctx, registry)
	require.NoError(t, err)
	recentStore, err := recent.NewStore(ctx, registry, nil)
	require.NoError(t, err)
	settingsStore, err := settings.NewStore(ctx, registry)
	require.NoError(t, err)

	catalogClient := catalog.NewClient(upstream.URL, "/image-proxy", nil)
	catalogService := catalog.NewService(catalogClient, logger)
	metadataClient := metadata.NewClient(upstream.URL, logger)
	sessions := reader.NewManager(catalogService, recentStore, settingsStore, logger)
	t.Cleanup(sessions.Shutdown)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{Checks: checks}, logger)

	return api.NewRouter(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Proxy:     requestProxy,
		Catalog:   catalog.NewHandler(catalogService),
		Metadata:  metadata.NewHandler(metadataClient),
		Discover:  discover.NewHandler(discover.NewService(metadataClient, catalogClient, logger)),
		Favorites: favorites.NewHandler(favoriteStore),
		Recent:    recent.NewHandler(recentStore),
		Settings:  settings.NewHandler(settingsStore),
		Reader:    reader.NewHandler(sessions),
	})
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
	return recorder
}

func TestRouter_Health(t *testing.T) {
	router := newRouter(t)

	recorder := serve(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = serve(router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ready"`)
}

func TestRouter_ReadinessDegraded(t *testing.T) {
	router := newRouter(t,
		api.HealthCheck{Name: "redis", Check: func(context.Context) error { return nil }},
		api.HealthCheck{Name: "postgres", Check: func(context.Context) error { return errors.New("refused") }},
	)

	recorder := serve(router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
	assert.Contains(t, recorder.Body.String(), "refused")
}

func TestRouter_ProxyRunsBeforeRouting(t *testing.T) {
	router := newRouter(t)

	recorder := serve(router, http.MethodGet, "/api/hot-series", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, hotSeries, recorder.Body.String())
}

func TestRouter_LocalRoutes(t *testing.T) {
	router := newRouter(t)

	recorder := serve(router, http.MethodPost, "/library/favorites", `{"source_id":"s1","anime_name":"One","image_src":"1.jpg"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = serve(router, http.MethodGet, "/library/favorites/s1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"is_favorite":true`)

	recorder = serve(router, http.MethodGet, "/library/settings", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(router, http.MethodGet, "/catalog/hot", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "hot-1")

	recorder = serve(router, http.MethodGet, "/reader/sessions", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(router, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
