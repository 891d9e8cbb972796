// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements writer accounts and their sessions.

Accounts live in PostgreSQL. Refresh sessions live in Redis under the SHA-256
of the opaque token, so a leaked keyspace cannot be replayed.
*/
package auth

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// User is a registered writer.
type User struct {
	ID           string       `json:"id"           db:"id"`
	Username     string       `json:"username"     db:"username"`
	Email        string       `json:"email"        db:"email"`
	PasswordHash string       `json:"-"            db:"passwordhash"`
	DisplayName  string       `json:"display_name" db:"displayname"`
	Role         sec.UserRole `json:"role"         db:"role"`
	CreatedAt    time.Time    `json:"created_at"   db:"createdat"`
	UpdatedAt    time.Time    `json:"updated_at"   db:"updatedat"`
}

// Session is one live refresh token.
type Session struct {
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Request field names, reported in validation details.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
)
