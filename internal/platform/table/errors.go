// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table

import (
	"errors"
	"fmt"
)

// Operation names carried by [Error].
const (
	OpSelect = "select"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ErrNotFound is returned when a keyed operation matches no row.
var ErrNotFound = errors.New("table: row not found")

// Error describes a failed backend call.
//
// Code carries the backend's machine-readable error code (a SQLSTATE for
// PostgreSQL) when one is available.
type Error struct {
	Op      string
	Table   string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("table %s %s: [%s] %s", e.Op, e.Table, e.Code, e.Message)
	}
	return fmt.Sprintf("table %s %s: %s", e.Op, e.Table, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// sqlStateError is implemented by driver errors that expose a SQLSTATE,
// such as *pgconn.PgError.
type sqlStateError interface {
	error
	SQLState() string
}

// wrap turns a client error into an [*Error], keeping an existing one intact.
func wrap(op, name string, err error) error {
	var tableError *Error
	if errors.As(err, &tableError) {
		return err
	}

	wrapped := &Error{Op: op, Table: name, Message: err.Error(), Err: err}

	var coded sqlStateError
	if errors.As(err, &coded) {
		wrapped.Code = coded.SQLState()
	}

	return wrapped
}
