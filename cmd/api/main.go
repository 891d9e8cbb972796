// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Command api runs the Inkwell HTTP API.

	api [serve]   start the HTTP server (default)
	api migrate          apply SQL migrations and seed the genre catalogue
	api migrate down -n  roll back n migrations
	api migrate version  print the applied migration version

No business logic lives here. All wiring is explicit constructor injection.
*/
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
)

var (
	envFile   string
	downSteps int
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Inkwell manuscript API",
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file read before the environment")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	})
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply migrations and seed genres",
		RunE:  runMigrate,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE:  runMigrateDown,
	}
	downCmd.Flags().IntVarP(&downSteps, "steps", "n", 1, "Number of migrations to roll back")

	migrateCmd.AddCommand(downCmd, &cobra.Command{
		Use:   "version",
		Short: "Print the applied migration version",
		RunE:  runMigrateVersion,
	})
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// bootstrap builds the logger and loads the configuration.
func bootstrap() (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo

	cfg, err := config.Load(envFile)
	if err == nil && cfg.Debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	if err != nil {
		return nil, log, err
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("debug", cfg.Debug),
	)
	return cfg, log, nil
}
