// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the keys of the values middleware attaches to a request
// context. Read and write them through ctxutil rather than directly.
package ctxkey

// key cannot be constructed outside this package, so no other package can
// shadow these entries.
type key uint8

const (
	// KeyRequestID holds the X-Request-ID correlation string.
	KeyRequestID key = iota + 1

	// KeyUser holds the caller's *sec.AuthClaims.
	KeyUser

	// KeyLogger holds the request-scoped *slog.Logger.
	KeyLogger
)
