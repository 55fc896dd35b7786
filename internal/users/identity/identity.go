// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity turns verified token claims into the acting user.

[Resolver.Middleware] runs after the token middleware, loads the account named
by the token subject and stores an [Actor] in the request context. Domain
services receive the Actor and use [Actor.CanManage] for owner-or-admin checks;
[RequireRole] is the only role gate on routes.
*/
package identity

import (
	"context"
	"net/http"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/ctxkey"
	"github.com/donghun712/wsd-term-proj/internal/platform/ctxutil"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
)

// Actor is the authenticated user performing a request.
type Actor struct {
	ID    int64
	Email string
	Role  sec.UserRole
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == sec.RoleAdmin
}

// CanManage reports whether the actor owns the resource or is an admin.
// A nil owner (for example a course whose instructor was deleted) is
// manageable by admins only.
func (a *Actor) CanManage(ownerID *int64) bool {
	if a == nil {
		return false
	}
	if a.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == a.ID
}

// UserFinder is the slice of [auth.UserRepository] the resolver needs.
type UserFinder interface {
	FindByEmail(context context.Context, email string) (*auth.User, error)
}

// Resolver loads the current user for authenticated requests.
type Resolver struct {
	users UserFinder
}

// NewResolver creates a [Resolver].
func NewResolver(users UserFinder) *Resolver {
	return &Resolver{users: users}
}

/*
CurrentUser loads the account named by the access token in ctx.

Returns:
  - *auth.User: The live account row
  - error: Unauthorized if there is no token or the account no longer exists
*/
func (resolver *Resolver) CurrentUser(context context.Context) (*auth.User, error) {
	claims := ctxutil.GetClaims(context)
	if claims == nil {
		return nil, apperr.Unauthorized(ctxutil.UnauthenticatedMessage(context))
	}

	user, err := resolver.users.FindByEmail(context, claims.Email())
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Could not validate credentials")
		}
		return nil, err
	}
	return user, nil
}

// Middleware requires an authenticated request and stores its [Actor].
//
// # Usage
//
// Must be registered AFTER middleware.Authenticate.
func (resolver *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user, err := resolver.CurrentUser(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		actor := &Actor{ID: user.ID, Email: user.Email, Role: user.Role}
		next.ServeHTTP(writer, request.WithContext(WithActor(request.Context(), actor)))
	})
}

// Optional stores the [Actor] when the request carries a valid token and
// otherwise lets it through anonymously. Public reads use it to show private
// resources to their owners.
func (resolver *Resolver) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetClaims(request.Context()) == nil {
			next.ServeHTTP(writer, request)
			return
		}

		user, err := resolver.CurrentUser(request.Context())
		if err != nil {
			if apperr.HasCode(err, apperr.CodeUnauthorized) {
				next.ServeHTTP(writer, request)
				return
			}
			respond.Error(writer, request, err)
			return
		}

		actor := &Actor{ID: user.ID, Email: user.Email, Role: user.Role}
		next.ServeHTTP(writer, request.WithContext(WithActor(request.Context(), actor)))
	})
}

// RequireRole blocks actors below the given role with 403.
//
// Must be registered AFTER [Resolver.Middleware].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := FromContext(request.Context())
			if actor == nil {
				respond.Error(writer, request, apperr.Unauthorized("Not authenticated"))
				return
			}
			if !actor.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// FromContext returns the actor stored by [Resolver.Middleware], or nil.
func FromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(ctxkey.KeyActor).(*Actor)
	return actor
}

// WithActor stores an actor in ctx. Used by tests and background jobs.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ctxkey.KeyActor, actor)
}

// Required returns the actor stored in ctx, or Unauthorized when the route
// was not wrapped by [Resolver.Middleware].
func Required(ctx context.Context) (*Actor, error) {
	actor := FromContext(ctx)
	if actor == nil {
		return nil, apperr.Unauthorized("Not authenticated")
	}
	return actor, nil
}
