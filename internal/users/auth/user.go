// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the account entity and the logic for signup, password and Google
login, refresh token exchange and logout.

# Architecture

Entities defined here carry no transport concerns. The account package and
the identity resolver build on [User] and [UserRepository].
*/
package auth

import (
	"time"

	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
)

// # Domain Entities

// Provider identifies how an account authenticates.
type Provider string

const (
	ProviderLocal  Provider = "LOCAL"
	ProviderGoogle Provider = "GOOGLE"
)

// User represents a registered member of the LMS.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	Provider     Provider     `json:"provider"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsAdmin reports whether the account holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == sec.RoleAdmin
}

// TokenPair is the credential bundle returned by every login flow.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldUsername     = "username"
	FieldToken        = "token"
	FieldRefreshToken = "refresh_token"
	FieldOldPassword  = "old_password"
	FieldNewPassword  = "new_password"
)
