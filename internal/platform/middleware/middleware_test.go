// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/ctxutil"
	"github.com/donghun712/wsd-term-proj/internal/platform/middleware"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
)

// # Fakes

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: make(map[string]int64)}
}

func (counter *memoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if counter.err != nil {
		return 0, 0, counter.err
	}
	counter.mu.Lock()
	defer counter.mu.Unlock()
	counter.counts[key]++
	return counter.counts[key], window, nil
}

func (counter *memoryCounter) Incr(_ context.Context, key string, _ time.Duration) error {
	if counter.err != nil {
		return counter.err
	}
	counter.mu.Lock()
	defer counter.mu.Unlock()
	counter.counts[key]++
	return nil
}

type stubVerifier struct {
	tokens *sec.TokenService
}

func (verifier stubVerifier) VerifyAccessToken(token string) (*sec.AuthClaims, error) {
	return verifier.tokens.VerifyAccessToken(token)
}

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func decodeCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Code
}

// # Rate Limiting

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	counter := newMemoryCounter()
	handler := middleware.RateLimit(counter, 60, time.Minute)(okHandler)

	for i := 0; i < 60; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
		request.RemoteAddr = "10.0.0.1:5555"
		handler.ServeHTTP(recorder, request)
		require.Equal(t, http.StatusOK, recorder.Code, "request %d", i+1)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	request.RemoteAddr = "10.0.0.1:5555"
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "60", recorder.Header().Get("Retry-After"))
	assert.Equal(t, apperr.CodeTooManyRequests, decodeCode(t, recorder))

	// Another address has its own budget.
	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	request.RemoteAddr = "10.0.0.2:5555"
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	counter := newMemoryCounter()
	counter.err = errors.New("dial tcp: connection refused")
	handler := middleware.RateLimit(counter, 1, time.Minute)(okHandler)

	for i := 0; i < 5; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

func TestThrottle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	throttle := middleware.NewThrottle(ctx, 0.001, 2)
	handler := throttle.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", nil)
		request.RemoteAddr = "192.0.2.7:4000"
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCountVisits(t *testing.T) {
	counter := newMemoryCounter()
	handler := middleware.CountVisits(counter)(okHandler)

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	key := "stats:visits:" + time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, int64(3), counter.counts[key])
}

// # Authentication

func TestAuthenticate(t *testing.T) {
	tokens, err := sec.NewTokenService("secret", "test", time.Minute, time.Hour)
	require.NoError(t, err)

	access, err := tokens.IssueAccess("ann@example.com", sec.RoleUser)
	require.NoError(t, err)
	refresh, err := tokens.IssueRefresh("ann@example.com")
	require.NoError(t, err)

	var seen *sec.AuthClaims
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetClaims(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.Authenticate(stubVerifier{tokens: tokens})(middleware.RequireAuth(inner))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"refresh_as_access", "Bearer " + refresh, http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusOK},
		{"lowercase_scheme", "bearer " + access, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)

			if tt.status == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, "ann@example.com", seen.Email())
			} else {
				assert.Equal(t, apperr.CodeUnauthorized, decodeCode(t, recorder))
			}
		})
	}
}

func TestAuthenticate_RejectedTokenProceedsAnonymously(t *testing.T) {
	tokens, err := sec.NewTokenService("secret", "test", time.Minute, time.Hour)
	require.NoError(t, err)

	expiredTokens, err := sec.NewTokenService("secret", "test", -time.Minute, time.Hour)
	require.NoError(t, err)
	expired, err := expiredTokens.IssueAccess("ann@example.com", sec.RoleUser)
	require.NoError(t, err)

	var reached bool
	public := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		reached = true
		assert.Nil(t, ctxutil.GetClaims(request.Context()))
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	request.Header.Set("Authorization", "Bearer "+expired)
	recorder := httptest.NewRecorder()
	middleware.Authenticate(stubVerifier{tokens: tokens})(public).ServeHTTP(recorder, request)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, recorder.Code)

	request = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	request.Header.Set("Authorization", "Bearer "+expired)
	recorder = httptest.NewRecorder()
	middleware.Authenticate(stubVerifier{tokens: tokens})(middleware.RequireAuth(okHandler)).ServeHTTP(recorder, request)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Could not validate credentials", envelope.Message)
}

// # Safety & Plumbing

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/explode", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, apperr.CodeInternal, decodeCode(t, recorder))
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		<-request.Context().Done()
	})

	recorder := httptest.NewRecorder()
	middleware.Timeout(10*time.Millisecond)(slow).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, apperr.CodeServiceUnavailable, decodeCode(t, recorder))

	// A response written before the deadline is kept as is.
	recorder = httptest.NewRecorder()
	middleware.Timeout(time.Second)(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.NotEmpty(t, ctxutil.GetRequestID(request.Context()))
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-supplied")
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-supplied", recorder.Header().Get("X-Request-ID"))
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{origins: []string{"https://lms.example.com"}})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://lms.example.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "https://lms.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://evil.example.net")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://lms.example.com")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRealIP_IgnoresClientHeaders(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "203.0.113.9:1234"
	request.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))

	request.RemoteAddr = "198.51.100.7"
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}

func TestRateLimit_SpoofedForwardedForSharesBudget(t *testing.T) {
	handler := middleware.RateLimit(newMemoryCounter(), 3, time.Minute)(okHandler)

	codes := make([]int, 0, 10)
	for i := 0; i < 10; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
		request.RemoteAddr = "10.0.0.9:4000"
		request.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusOK}, codes[:3])
	for _, code := range codes[3:] {
		assert.Equal(t, http.StatusTooManyRequests, code)
	}
}

func TestRouterFallbacks(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.NotFound(recorder, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	middleware.MethodNotAllowed(recorder, httptest.NewRequest(http.MethodPatch, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.Equal(t, apperr.CodeMethodNotAllowed, decodeCode(t, recorder))
}
