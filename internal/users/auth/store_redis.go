// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
)

// RedisRevocationStore implements [RevocationStore] using Redis keys with TTL.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a new Redis-backed [RevocationStore].
func NewRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

/*
Revoke stores the token ID until the token would have expired anyway.

Parameters:
  - context: context.Context
  - jti: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisRevocationStore) Revoke(context context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := constants.RedisPrefixRevokedToken + jti
	if err := repository.client.Set(context, key, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis_revocation_set_failed: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID is on the revocation list.
func (repository *RedisRevocationStore) IsRevoked(context context.Context, jti string) (bool, error) {
	key := constants.RedisPrefixRevokedToken + jti

	count, err := repository.client.Exists(context, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revocation_exists_failed: %w", err)
	}
	return count > 0, nil
}
