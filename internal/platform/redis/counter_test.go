// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/donghun712/wsd-term-proj/internal/platform/redis"
)

func newCounter(t *testing.T) (*redisstore.Counter, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewCounter(client), server
}

/*
TestCounter_HitStartsWindow verifies that the first hit sets the expiry and
that later hits count up inside the same window.
*/
func TestCounter_HitStartsWindow(t *testing.T) {
	counter, server := newCounter(t)
	ctx := context.Background()
	key := "rate_limit:10.0.0.1"

	// 1. First hit starts the window
	count, remaining, err := counter.Hit(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, remaining)
	assert.Equal(t, time.Minute, server.TTL(key))

	// 2. Counting past the limit keeps the original expiry
	server.FastForward(10 * time.Second)
	for i := 0; i < 3; i++ {
		count, remaining, err = counter.Hit(ctx, key, time.Minute)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(4), count)
	assert.Equal(t, 50*time.Second, remaining)

	// 3. A new window begins once the key expires
	server.FastForward(time.Minute)
	count, _, err = counter.Hit(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, server.TTL(key))
}

/*
TestCounter_HitRepairsMissingExpiry verifies that a counter left without a TTL
gets one on the next hit instead of blocking the client forever.
*/
func TestCounter_HitRepairsMissingExpiry(t *testing.T) {
	counter, server := newCounter(t)
	key := "rate_limit:10.0.0.2"
	require.NoError(t, server.Set(key, "99"))

	count, remaining, err := counter.Hit(context.Background(), key, 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)
	assert.Equal(t, 30*time.Second, remaining)
	assert.Equal(t, 30*time.Second, server.TTL(key))
}

func TestCounter_IncrAndGet(t *testing.T) {
	counter, server := newCounter(t)
	ctx := context.Background()
	key := "stats:visits:2026-01-02"

	value, err := counter.Get(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, value)

	for i := 0; i < 3; i++ {
		require.NoError(t, counter.Incr(ctx, key, 48*time.Hour))
	}

	value, err = counter.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), value)
	assert.Equal(t, 48*time.Hour, server.TTL(key))
}

func TestCounter_ServerDown(t *testing.T) {
	counter, server := newCounter(t)
	server.Close()

	_, _, err := counter.Hit(context.Background(), "rate_limit:10.0.0.3", time.Minute)
	assert.Error(t, err)
}
