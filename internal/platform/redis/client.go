// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis holds the short-lived counters and markers of the API:

  - rate_limit:<ip> fixed-window request counters;
  - stats:visits:<day> daily visit counters, rolled up into PostgreSQL;
  - revoked refresh token IDs (see the auth package).

Nothing stored here is authoritative. Losing the instance resets rate limits
and the current day's visit count.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPoolSize = 10

	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second
)

// NewClient parses redisURL, sizes the pool and pings the server.
//
// A non-positive poolSize keeps the default. A failed ping is logged as
// redis_unavailable and the client is still returned: every caller fails open
// per command, and go-redis reconnects once the server is back. Only an
// unparsable URL is an error.
func NewClient(context stdctx.Context, redisURL string, poolSize int, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = defaultPoolSize
	if poolSize > 0 {
		options.PoolSize = poolSize
	}
	options.MinIdleConns = max(1, options.PoolSize/5)
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		logger.Warn("redis_unavailable",
			slog.String("addr", options.Addr),
			slog.Any("error", err),
		)
		return client, nil
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping backs the readiness probe.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
