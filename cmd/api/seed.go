// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/donghun712/wsd-term-proj/internal/core/category"
	"github.com/donghun712/wsd-term-proj/internal/platform/config"
	pgstore "github.com/donghun712/wsd-term-proj/internal/platform/postgres"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
)

// seedCmd provisions reference data. Running it twice is safe.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the administrator account and default categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		if cfg.AdminPassword == "" {
			return errors.New("seed: ADMIN_PASSWORD must be set")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.PoolOptions{MaxConns: 2, MinConns: 1}, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		// Token issuance is never reached while seeding.
		authService := auth.NewService(auth.NewUserRepository(pool), nil, nil, nil, false, log)

		created, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}
		log.Info("seed_admin", slog.String("email", cfg.AdminEmail), slog.Bool("created", created))

		added, err := category.NewService(category.NewPostgresRepository(pool), log).EnsureDefaults(ctx)
		if err != nil {
			return err
		}
		log.Info("seed_categories", slog.Int("created", added))
		return nil
	},
}
