// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared across layers: server
// timing, rate limits, cookie names, header names and writing goals.
package constants

import "time"

const (
	AppName    = "inkwell-api"
	AppVersion = "0.1.0-dev"
)

// # Server

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout bounds a request and every SQL statement it runs.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second

	// ToastPruneInterval is how often idle per-user toast stores are dropped.
	ToastPruneInterval = 5 * time.Minute
)

// # Rate limiting (per client IP)

const (
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	AuthIssuer = "inkwell.app"

	// The refresh cookie is only sent to the auth routes.
	RefreshTokenCookieName = "inkwell_refresh"
	RefreshTokenCookiePath = "/api/v1/auth"

	RedisPrefixSession     = "inkwell:session:"
	RedisPrefixUserSession = "inkwell:user_sessions:"
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	// HeaderXReturnTo tells the client where to navigate after a mutation.
	HeaderXReturnTo = "X-Return-To"
)

// Health payload keys.
const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Writing goals

const (
	// ManuscriptWordGoal is the word count at which a manuscript reads as complete.
	ManuscriptWordGoal = 50000

	// DashboardRecentItems is the length of each dashboard list.
	DashboardRecentItems = 3
)
