// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// PostgresUserRepository stores accounts in users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var _ UserRepository = (*PostgresUserRepository)(nil)

const accountColumns = `id, username, email, passwordhash, displayname, role, createdat, updatedat`

// Create inserts user and fills in the timestamps chosen by the database.
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const insert = `
		INSERT INTO users.account (id, username, email, passwordhash, displayname, role)
		VALUES (@id, @username, @email, @passwordhash, @displayname, @role)
		RETURNING createdat, updatedat`

	args := pgx.NamedArgs{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"passwordhash": user.PasswordHash,
		"displayname":  user.DisplayName,
		"role":         string(user.Role),
	}
	if err := repository.pool.QueryRow(context, insert, args).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return dberr.Wrap(fmt.Errorf("auth: insert account: %w", err), "Account")
	}
	return nil
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, "id = $1", id)
}

// FindByEmail ignores case, matching the unique index on lower(email).
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, "lower(email) = lower($1)", email)
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, "username = $1", username)
}

func (repository *PostgresUserRepository) findBy(context context.Context, where string, value string) (*User, error) {
	rows, err := repository.pool.Query(context, "SELECT "+accountColumns+" FROM users.account WHERE "+where, value)
	if err != nil {
		return nil, fmt.Errorf("auth: query account: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("auth: scan account: %w", err)
	}
	return user, nil
}
