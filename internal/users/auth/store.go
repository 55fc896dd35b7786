// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	// ExistsByEmail reports whether an account uses the given email.
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		Create persists a brand-new user account and fills ID and timestamps.

		Returns:
		  - error: apperr.Conflict when the email is taken, or persistence failures
	*/
	Create(context context.Context, user *User) error

	// List returns one page of accounts ordered by ID, plus the total count.
	List(context context.Context, limit, offset int) ([]*User, int, error)

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(context context.Context, userID int64, newHash string) error

	// UpdateRole changes the role and returns the refreshed account.
	UpdateRole(context context.Context, userID int64, role sec.UserRole) (*User, error)

	/*
		Delete removes the account. Enrollments and reviews cascade; owned
		courses are kept with no instructor.

		Returns:
		  - error: apperr.NotFound if no row was deleted
	*/
	Delete(context context.Context, id int64) error
}

// # Token Revocation

// RevocationStore remembers refresh tokens that were explicitly logged out.
type RevocationStore interface {

	// Revoke marks the token ID as unusable for ttl.
	Revoke(context context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether the token ID was revoked.
	IsRevoked(context context.Context, jti string) (bool, error)
}
