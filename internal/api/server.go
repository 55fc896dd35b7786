// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/donghun712/wsd-term-proj/internal/core/category"
	"github.com/donghun712/wsd-term-proj/internal/core/course"
	"github.com/donghun712/wsd-term-proj/internal/core/enrollment"
	"github.com/donghun712/wsd-term-proj/internal/core/file"
	"github.com/donghun712/wsd-term-proj/internal/core/lecture"
	"github.com/donghun712/wsd-term-proj/internal/core/review"
	"github.com/donghun712/wsd-term-proj/internal/core/stats"
	"github.com/donghun712/wsd-term-proj/internal/platform/config"
	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
	"github.com/donghun712/wsd-term-proj/internal/platform/middleware"
	"github.com/donghun712/wsd-term-proj/internal/users/account"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Counters is the Redis-backed store behind the shared rate limit and the
// visit counter.
type Counters interface {
	middleware.WindowCounter
	middleware.DailyCounter
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup, login, refresh and logout.
	Auth *auth.Handler

	// Account handles self-service profile routes and admin user management.
	Account *account.Handler

	Category   *category.Handler
	Course     *course.Handler
	Lecture    *lecture.Handler
	Enrollment *enrollment.Handler
	Review     *review.Handler
	File       *file.Handler
	Stats      *stats.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, counters Counters, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)
	r.Use(middleware.RateLimit(counters, cfg.RateLimitRequests, cfg.RateLimitWindow))
	r.Use(middleware.CountVisits(counters))
	r.Use(middleware.Authenticate(verifier))

	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route(constants.APIPrefix, func(api chi.Router) {
		api.Get("/health", h.Liveness)

		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/categories", h.Category.Routes())
		api.Mount("/files", h.File.Routes())
		api.Mount("/admin", h.Stats.Routes())

		// Course-scoped domains share the /courses tree, so they register
		// absolute paths instead of mounting.
		h.Course.Register(api)
		h.Lecture.Register(api)
		h.Enrollment.Register(api)
		h.Review.Register(api)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
