// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the entropy of a refresh token in bytes.
	RefreshTokenLength = 32

	MinPasswordLength = 8
	MaxPasswordLength = 72
)
