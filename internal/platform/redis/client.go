// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package redis opens the client that stores refresh sessions. Session keys
// carry their own TTL, so nothing here sweeps them.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// tune applies pool sizes for a session store that sees one lookup per refresh.
func tune(options *redis.Options) {
	options.PoolSize = 8
	options.MinIdleConns = 1
	options.MaxIdleConns = 4
	options.ConnMaxIdleTime = 5 * time.Minute
	options.DialTimeout = 3 * time.Second
	options.ReadTimeout = time.Second
	options.WriteTimeout = time.Second
}

// NewClient dials the redis:// or rediss:// URL and pings it once.
func NewClient(ctx context.Context, url string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	tune(options)

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected", slog.String("addr", options.Addr), slog.Int("db", options.DB))
	return client, nil
}

// Ping reports whether client answers within a short deadline.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
