// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
)

func TestSignup_ThenLogin(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	user, err := f.service.Signup(ctx, auth.SignupInput{Email: "Ann@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, auth.ProviderLocal, user.Provider)
	assert.NotEqual(t, "password1", user.PasswordHash)

	pair, err := f.service.Login(ctx, "ann@example.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)

	claims, err := f.tokens.Verify(pair.AccessToken, sec.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email())
	assert.Equal(t, sec.RoleUser, claims.Role)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = f.service.Signup(ctx, auth.SignupInput{Email: "ann@example.com", Password: "password2"})
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))
}

func TestSignup_AdminPolicy(t *testing.T) {
	ctx := context.Background()

	allowed := newFixture(t, nil, true)
	admin, err := allowed.service.Signup(ctx, auth.SignupInput{Email: "root@example.com", Password: "password1", Role: sec.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	denied := newFixture(t, nil, false)
	_, err = denied.service.Signup(ctx, auth.SignupInput{Email: "root@example.com", Password: "password1", Role: sec.RoleAdmin})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = f.service.Login(ctx, "ann@example.com", "wrong-password")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = f.service.Login(ctx, "nobody@example.com", "password1")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestRefresh(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)
	pair, err := f.service.Login(ctx, "ann@example.com", "password1")
	require.NoError(t, err)

	refreshed, err := f.service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, refreshed.RefreshToken, "refresh token is not rotated")
	_, err = f.tokens.Verify(refreshed.AccessToken, sec.TokenTypeAccess)
	assert.NoError(t, err)

	// An access token is not a refresh token.
	_, err = f.service.Refresh(ctx, pair.AccessToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestRefresh_PicksUpRoleChange(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	user, err := f.service.Signup(ctx, auth.SignupInput{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)
	pair, err := f.service.Login(ctx, "ann@example.com", "password1")
	require.NoError(t, err)

	_, err = f.users.UpdateRole(ctx, user.ID, sec.RoleAdmin)
	require.NoError(t, err)

	refreshed, err := f.service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err := f.tokens.VerifyAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, claims.Role)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)
	pair, err := f.service.Login(ctx, "ann@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, pair.RefreshToken))
	require.Len(t, f.revocations.revoked, 1)
	for _, ttl := range f.revocations.revoked {
		assert.Positive(t, ttl)
	}

	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	assert.True(t, apperr.HasCode(f.service.Logout(ctx, "garbage"), apperr.CodeUnauthorized))
}

func TestRefresh_FailsOpenWhenRevocationStoreDown(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)
	pair, err := f.service.Login(ctx, "ann@example.com", "password1")
	require.NoError(t, err)

	f.revocations.err = errors.New("redis: connection refused")
	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_DeletedUser(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	user, err := f.service.Signup(ctx, auth.SignupInput{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)
	pair, err := f.service.Login(ctx, "ann@example.com", "password1")
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, user.ID))

	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_user_on_first_sight", func(t *testing.T) {
		f := newFixture(t, stubGoogle{email: "Gina@Example.com"}, true)

		pair, err := f.service.GoogleLogin(ctx, "id-token")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.RefreshToken)

		user, err := f.users.FindByEmail(ctx, "gina@example.com")
		require.NoError(t, err)
		assert.Equal(t, auth.ProviderGoogle, user.Provider)
		assert.Equal(t, sec.RoleUser, user.Role)

		// Second login reuses the account.
		_, err = f.service.GoogleLogin(ctx, "id-token")
		require.NoError(t, err)
		_, total, _ := f.users.List(ctx, 10, 0)
		assert.Equal(t, 1, total)
	})

	tests := []struct {
		name   string
		google auth.GoogleVerifier
		code   string
	}{
		{"not_configured", nil, apperr.CodeServiceUnavailable},
		{"empty_client_id", stubGoogle{err: auth.ErrGoogleNotConfigured}, apperr.CodeServiceUnavailable},
		{"rejected", stubGoogle{err: errGoogleRejected}, apperr.CodeUnauthorized},
		{"no_email", stubGoogle{}, apperr.CodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.google, true)
			_, err := f.service.GoogleLogin(ctx, "id-token")
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t, nil, false)
	ctx := context.Background()

	created, err := f.service.EnsureAdmin(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.service.EnsureAdmin(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)
	assert.False(t, created)

	// An existing plain account is promoted.
	_, err = f.service.Signup(ctx, auth.SignupInput{Email: "ops@example.com", Password: "password1"})
	require.NoError(t, err)
	_, err = f.service.EnsureAdmin(ctx, "ops@example.com", "ignored")
	require.NoError(t, err)
	ops, err := f.users.FindByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.True(t, ops.IsAdmin())
}
