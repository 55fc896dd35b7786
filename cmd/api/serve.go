// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donghun712/wsd-term-proj/internal/api"
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
	"github.com/donghun712/wsd-term-proj/internal/platform/migration"
	pgstore "github.com/donghun712/wsd-term-proj/internal/platform/postgres"
	redisstore "github.com/donghun712/wsd-term-proj/internal/platform/redis"
	"github.com/donghun712/wsd-term-proj/internal/platform/scheduler"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/platform/storage"
	"github.com/donghun712/wsd-term-proj/internal/users/account"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		serve()
		return nil
	},
}

/*
serve runs the full startup sequence and blocks until shutdown.

# Startup Sequence

 1. Load configuration and initialize the structured logger.
 2. Connect to PostgreSQL (pgxpool).
 3. Connect to Redis (degraded start when it is down).
 4. Run database migrations (idempotent).
 5. Token service, object storage and upload throttle.
 6. Domain wiring.
 7. Scheduled jobs.
 8. HTTP server with graceful shutdown.
*/
func serve() {
	// ── 1. Configuration & Logger ─────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		must(newLogger(nil), err, "load configuration")
	}

	log := newLogger(cfg)
	log.Info("service_initializing",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageBackend),
	)

	// Use a 30s deadline so misconfiguration is caught quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Background work (upload throttle janitor) lives until shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 2. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, poolOptions(cfg), log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
	must(log, err, "configure redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()
	counters := redisstore.NewCounter(rdb)

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Security & Storage ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	must(log, err, "initialize token service")

	objects, err := storage.New(startupCtx, cfg)
	must(log, err, "initialize object storage")

	uploadThrottle := middleware.NewThrottle(appCtx, constants.UploadThrottleRPS, constants.UploadThrottleBurst)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	var google auth.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = auth.NewIDTokenVerifier(cfg.GoogleClientID)
	}

	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, auth.NewRevocationStore(rdb), tokens, google, cfg.AllowAdminSignup, log)
	resolver := identity.NewResolver(userRepository)

	accountService := account.NewService(userRepository, log)

	categoryRepository := category.NewPostgresRepository(pool)
	categoryService := category.NewService(categoryRepository, log)

	courseRepository := course.NewPostgresRepository(pool)
	courseService := course.NewService(courseRepository, categoryRepository, log)

	lectureService := lecture.NewService(lecture.NewPostgresRepository(pool), courseRepository, log)

	enrollmentService := enrollment.NewService(enrollment.NewPostgresRepository(pool), courseRepository, log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), courseRepository, enrollmentService, log)

	fileService := file.NewService(objects, log)
	statsService := stats.NewService(stats.NewPostgresRepository(pool), counters, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, constants.AppVersion, log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Account:    account.NewHandler(accountService, resolver),
		Category:   category.NewHandler(categoryService, resolver),
		Course:     course.NewHandler(courseService, resolver),
		Lecture:    lecture.NewHandler(lectureService, resolver),
		Enrollment: enrollment.NewHandler(enrollmentService, resolver),
		Review:     review.NewHandler(reviewService, resolver),
		File:       file.NewHandler(fileService, cfg.UploadMaxBytes, uploadThrottle.Middleware),
		Stats:      stats.NewHandler(statsService, resolver),
	}

	// ── 7. Scheduled Jobs ─────────────────────────────────────────────────
	jobs := scheduler.New(log, time.Minute)
	must(log, jobs.Register("stats_rollup", cfg.StatsRollupSchedule, statsService.Rollup), "register stats rollup")
	jobs.Start()

	// ── 8. HTTP Server & Graceful Shutdown ────────────────────────────────
	server := api.NewServer(cfg, log, tokens, counters, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	jobs.Stop()
	appCancel()

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}
