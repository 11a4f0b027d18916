// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (proxy, stores, clients) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/yomira-reader/internal/platform/constants"
)

// Persisted state backends accepted by STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the reader server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Upstream origins forwarded by the request proxy
	CatalogUpstreamURL string `env:"CATALOG_UPSTREAM_URL" envDefault:"https://manga-api.techzone.workers.dev"`
	ImageUpstreamURL   string `env:"IMAGE_UPSTREAM_URL"   envDefault:"https://mangaimageproxy.techzone.workers.dev"`

	// CatalogBaseURL is where the catalog client sends its requests. When empty
	// the client goes through this server's own /api prefix.
	CatalogBaseURL string `env:"CATALOG_BASE_URL"`

	// TrustProxyHeaders lets the request proxy read X-Forwarded-Proto and
	// X-Forwarded-Host. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// ImageProxyPrefix is prepended to rewritten page URLs handed to clients.
	ImageProxyPrefix string `env:"IMAGE_PROXY_PREFIX" envDefault:"/image-proxy"`

	// Metadata (GraphQL) endpoint
	MetadataURL string `env:"METADATA_URL" envDefault:"https://graphql.anilist.co"`

	// Persisted library state
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	StoreDir     string `env:"STORE_DIR"     envDefault:"./data/state"`

	// Relational Database (PostgreSQL), required by the postgres backend
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), required by the redis backend; optional metadata cache otherwise
	RedisURL string `env:"REDIS_URL"`

	// Tracing (OTLP over HTTP); empty disables tracing
	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field requirements that struct tags cannot express.
func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when STORE_BACKEND=%s", BackendRedis)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when STORE_BACKEND=%s", BackendPostgres)
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CatalogURL resolves the base URL used by the catalog client.
func (c *Config) CatalogURL() string {
	if c.CatalogBaseURL != "" {
		return strings.TrimRight(c.CatalogBaseURL, "/")
	}
	return "http://127.0.0.1:" + c.ServerPort + strings.TrimRight(constants.APIPrefix, "/")
}

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
