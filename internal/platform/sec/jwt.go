// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. The signing secret is injected through [NewTokenService];
// there is no package-level key material.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes short-lived access tokens from long-lived refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// ErrInvalidToken is returned for every verification failure. Callers never
// learn which check failed.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside a signed token.
//
// The subject is the account email. Access tokens carry the role so that
// logs and coarse checks do not need a database round-trip; authorization
// decisions still use the freshly loaded user.
type AuthClaims struct {
	jwt.RegisteredClaims

	Role UserRole  `json:"role,omitempty"`
	Type TokenType `json:"type"`
}

// Email returns the subject of the token.
func (c *AuthClaims) Email() string { return c.Subject }

// TokenService issues and verifies HS256 tokens with a process-wide secret.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: HMAC signing key. Must not be empty.
//   - issuer: Value of the 'iss' claim.
//   - accessTTL / refreshTTL: Token lifetimes.
func NewTokenService(secret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// WithClock overrides the time source. Used by tests to mint expired tokens.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	service.now = now
	return service
}

// IssueAccess creates a signed access token for the subject and role.
func (service *TokenService) IssueAccess(subject string, role UserRole) (string, error) {
	return service.sign(subject, role, TokenTypeAccess, service.accessTTL)
}

// IssueRefresh creates a signed refresh token. It carries no role and a unique
// token ID so that it can be revoked individually.
func (service *TokenService) IssueRefresh(subject string) (string, error) {
	return service.sign(subject, "", TokenTypeRefresh, service.refreshTTL)
}

// AccessTTL reports the configured access token lifetime.
func (service *TokenService) AccessTTL() time.Duration { return service.accessTTL }

func (service *TokenService) sign(subject string, role UserRole, tokenType TokenType, ttl time.Duration) (string, error) {
	issuedAt := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Role: role,
		Type: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, nil
}

/*
Verify checks signature, expiry and type tag of a token.

The type check is what keeps a refresh token from being replayed as an access
token and the other way round.

Returns:
  - *AuthClaims: The decoded claims
  - error: [ErrInvalidToken] on any failure
*/
func (service *TokenService) Verify(tokenString string, expected TokenType) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.Type == "" || claims.Type != expected {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// VerifyAccessToken verifies a token as an access token. It satisfies the
// middleware's TokenVerifier contract.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.Verify(tokenString, TokenTypeAccess)
}
