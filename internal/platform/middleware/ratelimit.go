// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
	"github.com/donghun712/wsd-term-proj/internal/platform/ctxutil"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
)

// # Shared Window Limiter

// WindowCounter is the shared counter store behind [RateLimit].
//
// Hit increments the counter for key and returns the new count together with
// the time left in the current window. The implementation must start the
// window (set the expiry) on the first hit.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, remaining time.Duration, err error)
}

// RateLimit enforces a fixed request budget per client address and window.
//
// # Failure Mode
//
// If the counter store is unreachable the request is allowed and the failure
// is logged. Traffic is never blocked because the limiter itself is down.
func RateLimit(counter WindowCounter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key := constants.RedisPrefixRateLimit + RealIP(request)

			count, remaining, err := counter.Hit(request.Context(), key, window)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "rate_limiter_unavailable",
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			if count > int64(limit) {
				retryAfter := int(math.Ceil(remaining.Seconds()))
				if retryAfter <= 0 {
					retryAfter = int(window.Seconds())
				}
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # In-Process Throttle

type throttleClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle is a per-address token bucket kept in process memory.
//
// It guards expensive routes (uploads) on top of the shared window limiter.
type Throttle struct {
	mu      sync.Mutex
	clients map[string]*throttleClient
	rps     rate.Limit
	burst   int
}

// NewThrottle creates a Throttle and starts its idle-entry cleanup loop,
// which stops when ctx is cancelled.
func NewThrottle(ctx context.Context, rps float64, burst int) *Throttle {
	throttle := &Throttle{
		clients: make(map[string]*throttleClient),
		rps:     rate.Limit(rps),
		burst:   burst,
	}

	go func() {
		ticker := time.NewTicker(constants.ThrottleCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				throttle.evictIdle(constants.ThrottleClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return throttle
}

// Allow reports whether the client identified by key may proceed now.
func (throttle *Throttle) Allow(key string) bool {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	client, found := throttle.clients[key]
	if !found {
		client = &throttleClient{limiter: rate.NewLimiter(throttle.rps, throttle.burst)}
		throttle.clients[key] = client
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

func (throttle *Throttle) evictIdle(ttl time.Duration) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	for key, client := range throttle.clients {
		if time.Since(client.lastSeen) > ttl {
			delete(throttle.clients, key)
		}
	}
}

// Middleware rejects requests beyond the bucket with 429.
func (throttle *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !throttle.Allow(RealIP(request)) {
			retryAfter := 1
			if throttle.rps > 0 {
				retryAfter = int(math.Ceil(1 / float64(throttle.rps)))
			}
			writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
			respond.Error(writer, request, apperr.RateLimited(retryAfter))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Visit Counting

// DailyCounter increments a per-day counter that expires after ttl.
type DailyCounter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) error
}

// CountVisits records one visit per request under today's counter key.
// Counter failures are logged and never affect the request.
func CountVisits(counter DailyCounter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key := constants.RedisPrefixDailyVisits + time.Now().UTC().Format(constants.DateLayout)

			if err := counter.Incr(request.Context(), key, constants.VisitCounterTTL); err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "visit_counter_unavailable",
					slog.Any("error", err),
				)
			}

			next.ServeHTTP(writer, request)
		})
	}
}
