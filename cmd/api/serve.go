// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/inkwell/internal/api"
	"github.com/taibuivan/inkwell/internal/core/chapter"
	"github.com/taibuivan/inkwell/internal/core/character"
	"github.com/taibuivan/inkwell/internal/core/dashboard"
	"github.com/taibuivan/inkwell/internal/core/genre"
	"github.com/taibuivan/inkwell/internal/core/manuscript"
	"github.com/taibuivan/inkwell/internal/core/note"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/notify"
	pgstore "github.com/taibuivan/inkwell/internal/platform/postgres"
	redisstore "github.com/taibuivan/inkwell/internal/platform/redis"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// startupTimeout bounds every connection attempt made while booting.
const startupTimeout = 30 * time.Second

/*
runServe starts the API server.

# Startup Sequence

 1. Logger and configuration.
 2. PostgreSQL pool and Redis client.
 3. Token service and toast hub.
 4. Domain wiring.
 5. HTTP server with graceful shutdown.
*/
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	rootCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, startupTimeout)
	defer startupCancel()

	// ── Storage ───────────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	tables := pgstore.NewClient(pool, cfg.DatabaseSchema)

	// ── Security & Toasts ─────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize jwt service: %w", err)
	}

	hub := notify.NewHub(nil, log)
	defer hub.Close()
	go pruneToasts(rootCtx, hub, log)

	// ── Domain Wiring ─────────────────────────────────────────────────────
	authService := auth.NewService(auth.NewUserRepository(pool), auth.NewSessionRepository(rdb), tokens, log)

	manuscripts := manuscript.NewService(manuscript.NewTableRepository(tables), hub, log)
	chapters := chapter.NewService(chapter.NewTableRepository(tables), manuscripts, hub, log)
	characters := character.NewService(character.NewTableRepository(tables), hub, log)
	notes := note.NewService(note.NewTableRepository(tables), hub, log)
	genres := genre.NewService(genre.NewTableRepository(tables), log)

	summaries := dashboard.NewService(dashboard.Sources{
		Manuscripts: manuscripts,
		Characters:  characters,
		Chapters:    chapters,
		Notes:       notes,
	}, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Database: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		Sessions: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	server := api.NewServer(rootCtx, cfg, log, tokens, api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        auth.NewHandler(authService, cfg.IsProduction()),
		Dashboard:   dashboard.NewHandler(summaries),
		Manuscripts: manuscript.NewHandler(manuscripts),
		Chapters:    chapter.NewHandler(chapters),
		Characters:  character.NewHandler(characters),
		Notes:       note.NewHandler(notes),
		Genres:      genre.NewHandler(genres),
		Toasts:      notify.NewHandler(hub, cfg.IsDevelopment()),
	})

	// ── Serve ─────────────────────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}

	log.Info("shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped")
	return nil
}

// pruneToasts drops idle per-user toast stores until ctx ends.
func pruneToasts(ctx context.Context, hub *notify.Hub, log *slog.Logger) {
	ticker := time.NewTicker(constants.ToastPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := hub.Prune(); dropped > 0 {
				log.Debug("toast_stores_pruned", slog.Int("dropped", dropped))
			}
		}
	}
}

