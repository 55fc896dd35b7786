// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/middleware"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

type fixedUsers map[string]*auth.User

func (users fixedUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := users[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func TestActor_CanManage(t *testing.T) {
	owner := int64(7)
	other := int64(8)

	user := &identity.Actor{ID: 7, Role: sec.RoleUser}
	admin := &identity.Actor{ID: 1, Role: sec.RoleAdmin}

	assert.True(t, user.CanManage(&owner))
	assert.False(t, user.CanManage(&other))
	assert.False(t, user.CanManage(nil))
	assert.True(t, admin.CanManage(&other))
	assert.True(t, admin.CanManage(nil))

	var nobody *identity.Actor
	assert.False(t, nobody.CanManage(&owner))
}

func TestResolver_Chain(t *testing.T) {
	tokens, err := sec.NewTokenService("secret", "test", time.Minute, time.Hour)
	require.NoError(t, err)

	users := fixedUsers{
		"ann@example.com":  {ID: 2, Email: "ann@example.com", Role: sec.RoleUser},
		"root@example.com": {ID: 1, Email: "root@example.com", Role: sec.RoleAdmin},
	}
	resolver := identity.NewResolver(users)

	var seen *identity.Actor
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = identity.FromContext(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	userChain := middleware.Authenticate(tokens)(resolver.Middleware(inner))
	adminChain := middleware.Authenticate(tokens)(resolver.Middleware(identity.RequireRole(sec.RoleAdmin)(inner)))

	bearer := func(email string, role sec.UserRole) string {
		token, err := tokens.IssueAccess(email, role)
		require.NoError(t, err)
		return "Bearer " + token
	}

	tests := []struct {
		name    string
		handler http.Handler
		header  string
		status  int
		actorID int64
	}{
		{"anonymous", userChain, "", http.StatusUnauthorized, 0},
		{"user", userChain, bearer("ann@example.com", sec.RoleUser), http.StatusOK, 2},
		{"deleted_user", userChain, bearer("gone@example.com", sec.RoleUser), http.StatusUnauthorized, 0},
		{"user_on_admin_route", adminChain, bearer("ann@example.com", sec.RoleUser), http.StatusForbidden, 0},
		// The stored role wins over a stale claim.
		{"stale_admin_claim", adminChain, bearer("ann@example.com", sec.RoleAdmin), http.StatusForbidden, 0},
		{"admin", adminChain, bearer("root@example.com", sec.RoleAdmin), http.StatusOK, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			tt.handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, tt.actorID, seen.ID)
			}
		})
	}
}
