// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the LMS HTTP API.
//
// # Commands
//
//   - lms serve (default): run the HTTP server.
//   - lms migrate up|down: apply or roll back SQL migrations.
//   - lms seed: provision the administrator and default categories.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/donghun712/wsd-term-proj/internal/platform/config"
	pgstore "github.com/donghun712/wsd-term-proj/internal/platform/postgres"
)

var rootCmd = &cobra.Command{
	Use:           "lms",
	Short:         "Online course platform REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// newLogger builds the process-wide JSON logger and installs it as default.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", "lms"))

	slog.SetDefault(log)
	return log
}

func poolOptions(cfg *config.Config) pgstore.PoolOptions {
	return pgstore.PoolOptions{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
