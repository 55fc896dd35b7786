// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
	"github.com/donghun712/wsd-term-proj/internal/platform/ctxutil"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService] so tests
// can inject a stub.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify it as an ACCESS token via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// A malformed, expired or refresh token never rejects the request here. It
// proceeds as anonymous with the reason recorded, so public reads and
// POST /auth/refresh keep working, while [RequireAuth] and the identity
// resolver answer 401 with that reason on protected routes.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenStr) == "" {
				next.ServeHTTP(writer, withAuthFailure(request, "Invalid authorization format", nil))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(strings.TrimSpace(tokenStr))
			if err != nil {
				next.ServeHTTP(writer, withAuthFailure(request, "Could not validate credentials", err))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			if identity, ok := request.Context().Value(identityKey{}).(*requestIdentity); ok {
				identity.subject = claims.Subject
			}

			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func withAuthFailure(request *http.Request, reason string, cause error) *http.Request {
	ctx := request.Context()
	ctxutil.GetLogger(ctx).DebugContext(ctx, "bearer_token_rejected",
		slog.String("reason", reason),
		slog.Any("error", cause),
	)
	return request.WithContext(ctxutil.WithAuthFailure(ctx, reason))
}

// RequireAuth blocks requests that carry no verified access token.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetClaims(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized(ctxutil.UnauthenticatedMessage(request.Context())))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
