// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authtest

import (
	"time"

	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
)

const (
	secret = "authtest-secret"
	issuer = "authtest"
)

// NewTokens returns a token service with a fixed test secret.
func NewTokens() *sec.TokenService {
	tokens, err := sec.NewTokenService(secret, issuer, time.Hour, 24*time.Hour)
	if err != nil {
		panic(err)
	}
	return tokens
}

// Bearer returns an Authorization header value for user.
func Bearer(tokens *sec.TokenService, user *auth.User) string {
	token, err := tokens.IssueAccess(user.Email, user.Role)
	if err != nil {
		panic(err)
	}
	return "Bearer " + token
}

// ExpiredBearer returns a correctly signed access token for user that expired
// a day ago.
func ExpiredBearer(user *auth.User) string {
	tokens := NewTokens().WithClock(func() time.Time { return time.Now().Add(-25 * time.Hour) })
	return Bearer(tokens, user)
}
