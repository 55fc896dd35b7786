// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter implements fixed-window and daily counters on top of Redis.
type Counter struct {
	client *redis.Client
}

// NewCounter wraps an existing client.
func NewCounter(client *redis.Client) *Counter {
	return &Counter{client: client}
}

/*
Hit increments key and reports the count inside the current window.

Description: INCR and TTL run in one pipeline. When the key has no expiry
(first hit of a window, or a lost EXPIRE), the window is started with EXPIRE.

Returns:
  - int64: Count after the increment
  - time.Duration: Time left in the window
  - error: Connectivity failures
*/
func (counter *Counter) Hit(context stdctx.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := counter.client.TxPipeline()
	incr := pipe.Incr(context, key)
	ttl := pipe.TTL(context, key)

	if _, err := pipe.Exec(context); err != nil {
		return 0, 0, fmt.Errorf("redis_counter_hit_failed: %w", err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		if err := counter.client.Expire(context, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("redis_counter_expire_failed: %w", err)
		}
		remaining = window
	}

	return incr.Val(), remaining, nil
}

// Incr increments key and (re)sets its expiry.
func (counter *Counter) Incr(context stdctx.Context, key string, ttl time.Duration) error {
	pipe := counter.client.TxPipeline()
	pipe.Incr(context, key)
	pipe.Expire(context, key, ttl)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_counter_incr_failed: %w", err)
	}
	return nil
}

// Get returns the integer value at key, or 0 when the key does not exist.
func (counter *Counter) Get(context stdctx.Context, key string) (int64, error) {
	value, err := counter.client.Get(context, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis_counter_get_failed: %w", err)
	}
	return value, nil
}
