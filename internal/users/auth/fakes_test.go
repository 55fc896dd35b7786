// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
	"github.com/donghun712/wsd-term-proj/internal/users/auth/authtest"
)

// # In-memory fakes

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: make(map[string]time.Duration)}
}

func (m *memoryRevocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = ttl
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

type stubGoogle struct {
	email string
	err   error
}

func (s stubGoogle) VerifyEmail(context.Context, string) (string, error) {
	return s.email, s.err
}

var errGoogleRejected = errors.New("idtoken: invalid signature")

// # Fixture

type fixture struct {
	users       *authtest.Users
	revocations *memoryRevocations
	tokens      *sec.TokenService
	service     *auth.Service
}

func newFixture(t *testing.T, google auth.GoogleVerifier, allowAdminSignup bool) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret", "test", 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	users := authtest.NewUsers()
	revocations := newMemoryRevocations()

	return &fixture{
		users:       users,
		revocations: revocations,
		tokens:      tokens,
		service: auth.NewService(users, revocations, tokens, google, allowAdminSignup,
			slog.New(slog.DiscardHandler)),
	}
}
