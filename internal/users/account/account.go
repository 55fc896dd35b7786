// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles self-service profile operations and admin user management.

# Architecture

  - Domain: This package depends on the auth package for the User entity and
    its repository; it adds no storage of its own.
  - Security: Self-service routes act on the resolved actor; admin routes are
    gated by identity.RequireRole.
*/
package account

import "github.com/donghun712/wsd-term-proj/internal/platform/sec"

// # Views & Inputs

// EmailCheck is the response of the public email availability probe.
type EmailCheck struct {
	Email  string `json:"email"`
	Exists bool   `json:"exists"`
}

// ChangePasswordInput carries the old and new password for a self-service change.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// RoleChange is the admin request to change another user's role.
type RoleChange struct {
	Role sec.UserRole
}

// # Field Identifiers

const (
	FieldEmail       = "email"
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
	FieldRole        = "role"
)
