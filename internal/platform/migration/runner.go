// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under migrations/ with golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirty means a previous migration failed halfway and needs a manual force.
var ErrDirty = errors.New("migration: database is dirty")

// Runner drives one migration source against one database.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// Open connects to the database at dsn and reads migrations from dir.
func Open(dsn, dir string, logger *slog.Logger) (*Runner, error) {
	migrator, err := migrate.New("file://"+dir, DatabaseURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: open: %w", err)
	}
	migrator.Log = slogBridge{logger: logger}
	return &Runner{migrator: migrator, logger: logger}, nil
}

// Close releases the source and database handles.
func (runner *Runner) Close() error {
	sourceErr, databaseErr := runner.migrator.Close()
	return errors.Join(sourceErr, databaseErr)
}

// Version returns the applied version. Zero means nothing has run yet.
func (runner *Runner) Version() (uint, bool, error) {
	version, dirty, err := runner.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: version: %w", err)
	}
	return version, dirty, nil
}

// Up applies every pending migration.
func (runner *Runner) Up() error {
	return runner.apply("up", runner.migrator.Up)
}

// Down rolls back the given number of migrations.
func (runner *Runner) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migration: down needs a positive step count, got %d", steps)
	}
	return runner.apply("down", func() error { return runner.migrator.Steps(-steps) })
}

func (runner *Runner) apply(direction string, step func() error) error {
	from, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("%w at version %d", ErrDirty, from)
	}

	err = step()
	if errors.Is(err, migrate.ErrNoChange) {
		runner.logger.Info("migration_no_change", slog.String("direction", direction), slog.Uint64("version", uint64(from)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: %s: %w", direction, err)
	}

	to, _, err := runner.Version()
	if err != nil {
		return err
	}
	runner.logger.Info("migration_applied",
		slog.String("direction", direction),
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// RunUp opens a runner, applies pending migrations and closes it.
func RunUp(dsn, dir string, logger *slog.Logger) error {
	runner, err := Open(dsn, dir, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()
	return runner.Up()
}

// DatabaseURL rewrites a postgres URL to the pgx5 scheme the driver registers.
func DatabaseURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

type slogBridge struct {
	logger *slog.Logger
}

func (bridge slogBridge) Printf(format string, args ...any) {
	bridge.logger.Debug("migrate", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (slogBridge) Verbose() bool { return false }
