// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgx pool and implements [table.Client] on top of it.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

const (
	poolMaxConns          = 16
	poolMinConns          = 1
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 15 * time.Minute
	poolHealthCheckPeriod = time.Minute
	dialTimeout           = 5 * time.Second
	pingTimeout           = 2 * time.Second
)

// NewPool opens a pool on dsn and pings it once before returning.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	config.MaxConns = poolMaxConns
	config.MinConns = poolMinConns
	config.MaxConnLifetime = poolMaxConnLifetime
	config.MaxConnIdleTime = poolMaxConnIdleTime
	config.HealthCheckPeriod = poolHealthCheckPeriod
	config.ConnConfig.ConnectTimeout = dialTimeout
	config.AfterConnect = limitStatements

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_connected",
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
	)
	return pool, nil
}

// limitStatements caps every statement on a fresh connection at the request deadline.
func limitStatements(ctx context.Context, connection *pgx.Conn) error {
	_, err := connection.Exec(ctx, fmt.Sprintf("SET statement_timeout = %d", constants.GlobalRequestTimeout.Milliseconds()))
	return err
}

// Ping checks the pool can reach the server within a short deadline.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}
