// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/inkwell/internal/core/genre"
	"github.com/taibuivan/inkwell/internal/platform/migration"
	pgstore "github.com/taibuivan/inkwell/internal/platform/postgres"
)

// runMigrate applies pending migrations, then seeds missing genres.
func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	catalogue, err := genre.LoadCatalogue(cfg.GenreSeedPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), startupTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	client := pgstore.NewClient(pool, cfg.DatabaseSchema)
	service := genre.NewService(genre.NewTableRepository(client), log)

	added, err := service.Seed(ctx, catalogue)
	if err != nil {
		return err
	}

	log.Info("genres_seeded", slog.Int("added", added), slog.String("path", cfg.GenreSeedPath))
	return nil
}

// runMigrateDown rolls back --steps migrations. Seeded genres are left alone.
func runMigrateDown(_ *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	runner, err := migration.Open(cfg.DatabaseURL, cfg.MigrationPath, log)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.Down(downSteps)
}

func runMigrateVersion(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	runner, err := migration.Open(cfg.DatabaseURL, cfg.MigrationPath, log)
	if err != nil {
		return err
	}
	defer runner.Close()

	version, dirty, err := runner.Version()
	if err != nil {
		return err
	}

	cmd.Printf("version %d dirty=%t\n", version, dirty)
	return nil
}
