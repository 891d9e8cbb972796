// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/table"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity in the 404 message ("Chapter" -> "Chapter not found").
// Errors that are already an [apperr.AppError] pass through unchanged.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, table.ErrNotFound) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations
	switch code(err) {
	case pgerrcode.UniqueViolation:
		return apperr.Conflict(fmt.Sprintf("%s already exists", resource))
	case pgerrcode.ForeignKeyViolation, pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return apperr.Unprocessable(fmt.Sprintf("%s violates a data constraint", resource))
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

func code(err error) string {
	var tableErr *table.Error
	if errors.As(err, &tableErr) && tableErr.Code != "" {
		return tableErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
