// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/donghun712/wsd-term-proj/internal/platform/ctxutil"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Claims verifies that token claims can be stored in context.
*/
func TestContext_Claims(t *testing.T) {
	ctx := context.Background()
	claims := &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user@example.com"},
		Role:             sec.RoleAdmin,
		Type:             sec.TokenTypeAccess,
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetClaims(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithClaims(ctx, claims)
	retrieved := ctxutil.GetClaims(ctx)
	assert.Equal(t, claims, retrieved)
	assert.Equal(t, "user@example.com", retrieved.Email())
}

/*
TestContext_NilLoggerFallsBack verifies that a nil logger stored by mistake
never reaches callers.
*/
func TestContext_NilLoggerFallsBack(t *testing.T) {
	ctx := ctxutil.WithLogger(context.Background(), nil)

	logger := ctxutil.GetLogger(ctx)
	assert.NotNil(t, logger)
	assert.Equal(t, slog.Default(), logger)
	assert.NotPanics(t, func() { logger.Info("still_logging") })
}

/*
TestContext_AuthFailure verifies the 401 message chosen for requests that
carry no verified claims.
*/
func TestContext_AuthFailure(t *testing.T) {
	ctx := context.Background()

	// 1. No token at all
	assert.Empty(t, ctxutil.GetAuthFailure(ctx))
	assert.Equal(t, "Not authenticated", ctxutil.UnauthenticatedMessage(ctx))

	// 2. A token was presented and rejected
	ctx = ctxutil.WithAuthFailure(ctx, "Could not validate credentials")
	assert.Equal(t, "Could not validate credentials", ctxutil.GetAuthFailure(ctx))
	assert.Equal(t, "Could not validate credentials", ctxutil.UnauthenticatedMessage(ctx))
}
