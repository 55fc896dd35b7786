// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Window sizes and upload throttling.
  - Security: Token lifetimes and issuer.

Using this package keeps magic strings and numbers out of the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "lms-api"
	AppVersion = "1.0.0"

	// APIPrefix is the versioned mount point for every domain route.
	APIPrefix = "/api/v1"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads stream through this window, so it is wider than a plain JSON API needs.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRequests is the number of requests allowed per client per window.
	DefaultRateLimitRequests = 60

	// DefaultRateLimitWindow is the fixed window length for the shared counter.
	DefaultRateLimitWindow = 60 * time.Second

	// UploadThrottleRPS is the sustained upload rate allowed per client.
	UploadThrottleRPS = 1.0

	// UploadThrottleBurst is the number of uploads a client may fire back to back.
	UploadThrottleBurst = 5

	// ThrottleCleanupInterval is how often idle upload limiters are dropped from memory.
	ThrottleCleanupInterval = 1 * time.Minute

	// ThrottleClientTTL is how long a client must be idle before its limiter is deleted.
	ThrottleClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "wsd-lms"

	// AccessTokenTTL is the lifetime of an access token.
	AccessTokenTTL = 30 * time.Minute

	// RefreshTokenTTL is the lifetime of a refresh token.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// TokenTypeBearer is the token_type reported to OAuth2-style clients.
	TokenTypeBearer = "bearer"
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderOrigin         = "Origin"
	HeaderAuthorization  = "Authorization"
	HeaderRetryAfter     = "Retry-After"
	HeaderContentType    = "Content-Type"
	MIMEApplicationJSON  = "application/json; charset=utf-8"
	MIMEOctetStream      = "application/octet-stream"
	MIMEFormURLEncoded   = "application/x-www-form-urlencoded"
)

// # Redis Prefixes (Key Taxonomy)

const (
	RedisPrefixRateLimit    = "rate_limit:"
	RedisPrefixRevokedToken = "auth:revoked:"
	RedisPrefixDailyVisits  = "stats:visits:"
)

// # Statistics

const (
	// VisitCounterTTL keeps daily visit counters around long enough for the rollup job.
	VisitCounterTTL = 8 * 24 * time.Hour

	// DefaultStatsRollupSchedule runs the visit rollup shortly after midnight.
	DefaultStatsRollupSchedule = "5 0 * * *"

	// DateLayout is the day key format used by counters and daily reports.
	DateLayout = "2006-01-02"
)
