// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire reader.

It defines default timeouts, rate limits, upstream origins, and the storage keys
that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Upstreams: Catalog, image proxy, and metadata origins.
  - Storage: Persisted state keys and cache prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "yomira-reader"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout covers streamed image bodies relayed by the proxy.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the local JSON endpoints.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// UpstreamClientTimeout caps a single outbound call made by the catalog and metadata clients.
	UpstreamClientTimeout = 20 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	// Reader pages fan out into many image requests, so the budget is generous.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 200

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Upstreams

const (
	// CatalogUpstreamURL serves series, chapter, and page listings.
	CatalogUpstreamURL = "https://manga-api.techzone.workers.dev"

	// ImageUpstreamURL streams external images given an ?imageurl= parameter.
	ImageUpstreamURL = "https://mangaimageproxy.techzone.workers.dev"

	// MetadataURL is the public GraphQL endpoint for supplementary series data.
	MetadataURL = "https://graphql.anilist.co"

	// APIPrefix is the path prefix forwarded to the catalog upstream.
	APIPrefix = "/api/"

	// ImageProxyPrefix is the path prefix forwarded to the image upstream.
	ImageProxyPrefix = "/image-proxy/"
)

// # Persisted State Keys

const (
	StorageKeyFavorites = "favorites-storage"
	StorageKeyRecent    = "recent-storage"
	StorageKeySettings  = "reading-settings"
)

// # HTTP Headers

const (
	HeaderXRequestID      = "X-Request-ID"
	HeaderXRealIP         = "X-Real-IP"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderXForwardedHost  = "X-Forwarded-Host"
	HeaderXForwardedProto = "X-Forwarded-Proto"
	HeaderOrigin          = "Origin"
	HeaderAccept          = "Accept"
	HeaderUserAgent       = "User-Agent"
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixState    = "yomira:state:"
	RedisPrefixMetadata = "yomira:metadata:"
)
