// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donghun712/wsd-term-proj/internal/platform/config"
	"github.com/donghun712/wsd-term-proj/internal/platform/migration"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return err
		}
		return logVersion(cfg, log)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations (all of them unless --steps is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		if err := migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, migrateSteps, log); err != nil {
			return err
		}
		return logVersion(cfg, log)
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 0, "number of migrations to roll back (0 = all)")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func logVersion(cfg *config.Config, log *slog.Logger) error {
	version, dirty, err := migration.Version(cfg.DatabaseURL, cfg.MigrationPath, log)
	if err != nil {
		return err
	}
	log.Info("migration_version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
