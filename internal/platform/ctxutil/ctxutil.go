// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the per-request values keyed in ctxkey.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/inkwell/internal/platform/ctxkey"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

func lookup[T any](ctx context.Context, key any) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, ctxkey.KeyRequestID)
	return id
}

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, ctxkey.KeyLogger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithAuthUser attaches the verified token claims.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the caller's claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := lookup[*sec.AuthClaims](ctx, ctxkey.KeyUser)
	return claims
}

// UserID returns the caller's id, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
