// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donghun712/wsd-term-proj/internal/api"
	"github.com/donghun712/wsd-term-proj/internal/core/category"
	"github.com/donghun712/wsd-term-proj/internal/core/course"
	"github.com/donghun712/wsd-term-proj/internal/core/course/coursetest"
	"github.com/donghun712/wsd-term-proj/internal/core/enrollment"
	"github.com/donghun712/wsd-term-proj/internal/core/file"
	"github.com/donghun712/wsd-term-proj/internal/core/lecture"
	"github.com/donghun712/wsd-term-proj/internal/core/review"
	"github.com/donghun712/wsd-term-proj/internal/core/stats"
	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/config"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/platform/storage"
	"github.com/donghun712/wsd-term-proj/internal/users/account"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
	"github.com/donghun712/wsd-term-proj/internal/users/auth/authtest"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

// # Fakes

type memoryCounters struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (m *memoryCounters) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], window, nil
}

func (m *memoryCounters) Incr(_ context.Context, key string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return nil
}

type noRevocations struct{}

func (noRevocations) Revoke(context.Context, string, time.Duration) error { return nil }
func (noRevocations) IsRevoked(context.Context, string) (bool, error)     { return false, nil }

type noCategories struct{}

func (noCategories) FindByID(context.Context, int64) (*category.Category, error) {
	return nil, apperr.NotFound("Category")
}

type testServer struct {
	handler http.Handler
	tokens  *sec.TokenService
	users   *authtest.Users
	courses *coursetest.Courses
}

// newTestServer wires every domain. Repositories of domains that a test does
// not exercise are left nil.
func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	tokens := authtest.NewTokens()
	users := authtest.NewUsers()
	courses := coursetest.NewCourses()
	resolver := identity.NewResolver(users)

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort:        "0",
		Environment:       "test",
		RateLimitRequests: rateLimit,
		RateLimitWindow:   time.Minute,
	}

	enrollments := enrollment.NewService(nil, courses, logger)
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("redis down") },
	}, "9.9.9", logger)

	server := api.NewServer(cfg, logger, tokens, &memoryCounters{counts: map[string]int64{}}, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(auth.NewService(users, noRevocations{}, tokens, nil, true, logger)),
		Account:    account.NewHandler(account.NewService(users, logger), resolver),
		Category:   category.NewHandler(category.NewService(nil, logger), resolver),
		Course:     course.NewHandler(course.NewService(courses, noCategories{}, logger), resolver),
		Lecture:    lecture.NewHandler(lecture.NewService(nil, courses, logger), resolver),
		Enrollment: enrollment.NewHandler(enrollments, resolver),
		Review:     review.NewHandler(review.NewService(nil, courses, enrollments, logger), resolver),
		File:       file.NewHandler(file.NewService(local, logger), 1<<20, func(next http.Handler) http.Handler { return next }),
		Stats:      stats.NewHandler(stats.NewService(nil, nil, logger), resolver),
	})

	return &testServer{handler: server.Handler(), tokens: tokens, users: users, courses: courses}
}

func (s *testServer) do(method, path, authorization, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, request)
	return recorder
}

func envelope(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// # Tests

func TestHealth(t *testing.T) {
	s := newTestServer(t, 100)

	for _, path := range []string{"/health", "/api/v1/health"} {
		recorder := s.do(http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body api.Liveness
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "9.9.9", body.Version)
		assert.NotEmpty(t, body.Uptime)
	}

	recorder := s.do(http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "redis down")
}

func TestRouterFallbacksUseEnvelope(t *testing.T) {
	s := newTestServer(t, 100)

	recorder := s.do(http.MethodGet, "/api/v1/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, apperr.CodeNotFound, envelope(t, recorder).Code)

	recorder = s.do(http.MethodPatch, "/api/v1/courses", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.Equal(t, apperr.CodeMethodNotAllowed, envelope(t, recorder).Code)
}

func TestSignupLoginAndCreateCourse(t *testing.T) {
	s := newTestServer(t, 100)

	recorder := s.do(http.MethodPost, "/api/v1/auth/signup", "", `{"email":"ann@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader("username=ann@example.com&password=password123"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder = httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &pair))
	bearer := "Bearer " + pair.AccessToken

	recorder = s.do(http.MethodGet, "/api/v1/users/me", bearer, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = s.do(http.MethodPost, "/api/v1/courses", bearer, `{"title":"Go from zero","price":0}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created course.Course
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))

	recorder = s.do(http.MethodGet, fmt.Sprintf("/api/v1/courses/%d", created.ID), "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = s.do(http.MethodGet, "/api/v1/courses?page=1&size=10", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_elements":1`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, 100)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPost, "/api/v1/courses"},
		{http.MethodPost, "/api/v1/courses/1/lectures"},
		{http.MethodPost, "/api/v1/courses/1/enroll"},
		{http.MethodGet, "/api/v1/enrollments/me"},
		{http.MethodPost, "/api/v1/courses/1/reviews"},
		{http.MethodDelete, "/api/v1/reviews/1"},
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodGet, "/api/v1/admin/stats"},
	}

	for _, route := range routes {
		recorder := s.do(route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", route.method, route.path)
	}

	member := s.users.Add("bob@example.com", "password1", sec.RoleUser)
	recorder := s.do(http.MethodGet, "/api/v1/admin/stats", authtest.Bearer(s.tokens, member), "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestExpiredAccessTokenOnPublicRoutes(t *testing.T) {
	s := newTestServer(t, 100)
	ann := s.users.Add("ann@example.com", "password123", sec.RoleUser)
	expired := authtest.ExpiredBearer(ann)

	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader("username=ann@example.com&password=password123"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &pair))

	recorder = s.do(http.MethodPost, "/api/v1/auth/refresh", expired,
		fmt.Sprintf(`{"refresh_token":%q}`, pair.RefreshToken))
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = s.do(http.MethodGet, "/api/v1/courses", expired, "")
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = s.do(http.MethodGet, "/api/v1/users/me", expired, "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Could not validate credentials", envelope(t, recorder).Message)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, 3)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "").Code)
	}

	recorder := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
}
