// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/donghun712/wsd-term-proj/internal/platform/ctxkey"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithClaims returns a new context with the verified token claims attached.
func WithClaims(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyClaims, claims)
}

// GetClaims retrieves the [*sec.AuthClaims] from the [context.Context].
// Returns nil for anonymous requests.
func GetClaims(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyClaims).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// WithAuthFailure records that the request presented a bearer token that was
// rejected, so protected routes can say why.
func WithAuthFailure(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAuthFailure, reason)
}

// GetAuthFailure returns the reason stored by [WithAuthFailure], or "".
func GetAuthFailure(ctx context.Context) string {
	reason, _ := ctx.Value(ctxkey.KeyAuthFailure).(string)
	return reason
}

// UnauthenticatedMessage is the 401 message for a request without claims.
func UnauthenticatedMessage(ctx context.Context) string {
	if reason := GetAuthFailure(ctx); reason != "" {
		return reason
	}
	return "Not authenticated"
}
