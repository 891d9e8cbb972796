// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/table"
)

/*
TestWrap classifies database failures into application errors.
*/
func TestWrap(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"no rows", fmt.Errorf("select: %w", pgx.ErrNoRows), http.StatusNotFound, "Chapter not found"},
		{"table not found", &table.Error{Op: table.OpUpdate, Table: "chapters", Err: table.ErrNotFound}, http.StatusNotFound, "Chapter not found"},
		{"unique", &table.Error{Op: table.OpInsert, Code: "23505", Err: errors.New("dup")}, http.StatusConflict, "Chapter already exists"},
		{"pg unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), http.StatusConflict, "Chapter already exists"},
		{"check", &table.Error{Code: "23514", Err: errors.New("check")}, http.StatusUnprocessableEntity, "Chapter violates a data constraint"},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := apperr.As(dberr.Wrap(tc.err, "Chapter"))
			require.NotNil(t, appErr)
			assert.Equal(t, tc.status, appErr.HTTPStatus)
			if tc.message != "" {
				assert.Equal(t, tc.message, appErr.Message)
			}
		})
	}
}

/*
TestWrap_PassThrough keeps nil and existing application errors untouched.
*/
func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Note"))

	original := apperr.Forbidden("nope")
	assert.Same(t, original, dberr.Wrap(original, "Note"))
}
