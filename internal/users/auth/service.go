// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management layer.

It handles user registration, password hashing, and the access/refresh token
lifecycle. Refresh tokens are stateless JWTs; logout records their ID in Redis
so a logged-out token cannot mint new access tokens.

Architecture:

  - Service: Orchestrates business logic (Signup, Login, Google, Refresh, Logout).
  - Repository: Postgres (users) and Redis (revoked refresh tokens).
  - Security: bcrypt password hashes and HS256-signed JWTs.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and verifying security tokens.
type TokenProvider interface {
	IssueAccess(subject string, role sec.UserRole) (string, error)
	IssueRefresh(subject string) (string, error)
	Verify(token string, expected sec.TokenType) (*sec.AuthClaims, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository   UserRepository
	revocations      RevocationStore
	tokenProvider    TokenProvider
	google           GoogleVerifier
	allowAdminSignup bool
	logger           *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	revocations RevocationStore,
	tokenProv TokenProvider,
	google GoogleVerifier,
	allowAdminSignup bool,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:   userRepo,
		revocations:      revocations,
		tokenProvider:    tokenProv,
		google:           google,
		allowAdminSignup: allowAdminSignup,
		logger:           logger,
	}
}

// NormalizeEmail trims and lowercases an address before lookups and inserts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Email    string
	Password string
	Role     sec.UserRole
}

/*
Signup validates, hashes, and persists a brand new local account.

Parameters:
  - context: context.Context
  - input: SignupInput (Role may be empty, meaning USER)

Returns:
  - *User: Created entity
  - error: BadRequest if the email is taken, Forbidden for a disallowed ADMIN signup
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	email := NormalizeEmail(input.Email)

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}
	if role == sec.RoleAdmin && !service.allowAdminSignup {
		return nil, apperr.Forbidden("Admin signup is disabled")
	}

	// ── 1. Uniqueness ─────────────────────────────────────────────────────
	exists, err := service.userRepository.ExistsByEmail(context, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.BadRequest("Email already registered")
	}

	// ── 2. Hash ───────────────────────────────────────────────────────────
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Persist ────────────────────────────────────────────────────────
	user := &User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		Provider:     ProviderLocal,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		// A concurrent signup won the unique index.
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.BadRequest("Email already registered")
		}
		return nil, err
	}

	service.logger.Info("user_signed_up",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// # Authentication Flow

/*
Login validates user credentials and issues a token pair.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *TokenPair: Access and refresh token
  - error: Unauthorized with a generic message for any credential mismatch
*/
func (service *Service) Login(context context.Context, email, password string) (*TokenPair, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Incorrect email or password")
		}
		return nil, err
	}

	// bcrypt comparison is constant-time.
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}

	return service.issuePair(user)
}

/*
GoogleLogin signs a user in with a Google ID token.

Description: The first sign-in for an email creates a GOOGLE account with an
unusable random password, so the account can never log in with a password.

Returns:
  - *TokenPair: Access and refresh token
  - error: ServiceUnavailable when not configured, Unauthorized for a bad
    token, BadRequest when the token carries no email
*/
func (service *Service) GoogleLogin(context context.Context, idToken string) (*TokenPair, error) {
	if service.google == nil {
		return nil, apperr.ServiceUnavailable("Google sign-in is not configured")
	}

	email, err := service.google.VerifyEmail(context, idToken)
	if errors.Is(err, ErrGoogleNotConfigured) {
		return nil, apperr.ServiceUnavailable("Google sign-in is not configured")
	}
	if err != nil {
		return nil, apperr.Unauthorized("Invalid Google token")
	}
	if email == "" {
		return nil, apperr.BadRequest("Google token has no email")
	}
	email = NormalizeEmail(email)

	user, err := service.userRepository.FindByEmail(context, email)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		user, err = service.createGoogleUser(context, email)
	}
	if err != nil {
		return nil, err
	}

	return service.issuePair(user)
}

func (service *Service) createGoogleUser(context context.Context, email string) (*User, error) {
	secret, err := sec.GenerateSecureToken(UnusablePasswordLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_random_password_failed: %w", err)
	}
	hashedPassword, err := sec.HashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		Provider:     ProviderGoogle,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		// Two first-time logins raced; use the winner's row.
		if apperr.HasCode(err, apperr.CodeConflict) {
			return service.userRepository.FindByEmail(context, email)
		}
		return nil, err
	}

	service.logger.Info("user_signed_up", slog.Int64("user_id", user.ID), slog.String("provider", string(ProviderGoogle)))
	return user, nil
}

// # Session Lifecycle

/*
Refresh mints a new access token from a refresh token.

Description: The refresh token is returned unchanged (no rotation). The role
in the new access token is re-read from the database.

Returns:
  - *TokenPair: Fresh access token with the same refresh token
  - error: Unauthorized if the token is invalid, revoked, or its user is gone
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := service.tokenProvider.Verify(refreshToken, sec.TokenTypeRefresh)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	revoked, err := service.revocations.IsRevoked(context, claims.ID)
	if err != nil {
		// Same policy as the rate limiter: Redis trouble does not lock users out.
		service.logger.Warn("revocation_check_unavailable", slog.Any("error", err))
	}
	if revoked {
		return nil, apperr.Unauthorized("Refresh token has been revoked")
	}

	user, err := service.userRepository.FindByEmail(context, claims.Email())
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("User no longer exists")
		}
		return nil, err
	}

	accessToken, err := service.tokenProvider.IssueAccess(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constants.TokenTypeBearer,
	}, nil
}

/*
Logout revokes a refresh token for the rest of its lifetime.

Returns:
  - error: Unauthorized for an invalid token, or store failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	claims, err := service.tokenProvider.Verify(refreshToken, sec.TokenTypeRefresh)
	if err != nil {
		return apperr.Unauthorized("Invalid refresh token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := service.revocations.Revoke(context, claims.ID, ttl); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("user_logged_out", slog.String("email", claims.Email()))
	return nil
}

// # Provisioning

/*
EnsureAdmin creates the administrator account when it does not exist yet.

Description: An existing account with that email is promoted to ADMIN; its
password is left untouched.

Returns:
  - bool: true if a new account was created
  - error: Persistence failures
*/
func (service *Service) EnsureAdmin(context context.Context, email, password string) (bool, error) {
	email = NormalizeEmail(email)

	existing, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		if !existing.IsAdmin() {
			_, err = service.userRepository.UpdateRole(context, existing.ID, sec.RoleAdmin)
		}
		return false, err
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return false, err
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	admin := &User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleAdmin,
		Provider:     ProviderLocal,
	}
	if err := service.userRepository.Create(context, admin); err != nil {
		return false, err
	}
	return true, nil
}

func (service *Service) issuePair(user *User) (*TokenPair, error) {
	accessToken, err := service.tokenProvider.IssueAccess(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.IssueRefresh(user.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constants.TokenTypeBearer,
	}, nil
}
