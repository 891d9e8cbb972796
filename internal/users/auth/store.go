// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// UserRepository loads and creates writer accounts. Lookups of a missing
// account return apperr.NotFound.
type UserRepository interface {
	FindByID(context context.Context, id string) (*User, error)
	FindByEmail(context context.Context, email string) (*User, error)
	FindByUsername(context context.Context, username string) (*User, error)

	// Create returns apperr.Conflict when the username or email is taken.
	Create(context context.Context, user *User) error
}

// SessionRepository keeps refresh sessions keyed by the token hash.
type SessionRepository interface {
	// Create stores session until its ExpiresAt.
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns the live session or apperr.NotFound.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Consume removes the session and returns it in one step, or
	// apperr.NotFound. Of two concurrent calls only one gets the session.
	Consume(context context.Context, tokenHash string) (*Session, error)

	// Revoke is a no-op for unknown hashes.
	Revoke(context context.Context, tokenHash string) error

	RevokeAll(context context.Context, userID string) error
}
