// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (token claims, resolved
// identity, request ID, logger). Using an unexported key type prevents
// collisions with third-party packages that also use context storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyClaims is the context key for verified access token claims ([sec.AuthClaims]).
	KeyClaims key = "claims"

	// KeyAuthFailure is the context key for why a presented bearer token was
	// not accepted. Anonymous requests carry none.
	KeyAuthFailure key = "auth_failure"

	// KeyActor is the context key for the identity resolved from the claims.
	KeyActor key = "actor"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
