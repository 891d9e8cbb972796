// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by services and handlers.

An [AppError] carries what the client may see (code, message, field details)
and what only the logs may see (the cause). Repositories return plain errors;
services translate them into an AppError before they reach a handler.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeConflict      = "CONFLICT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeRateLimited   = "RATE_LIMITED"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError is an error with a client-safe rendering.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Details    []FieldError `json:"details,omitempty"`

	// Cause is logged but never serialised.
	Cause error `json:"-"`
}

// FieldError is one failed form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors

// NotFound reports a missing resource: NotFound("Manuscript") reads
// "Manuscript not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden reports an authenticated caller without the required role.
func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// Conflict reports a unique-constraint clash.
func Conflict(message string) *AppError {
	return newError(http.StatusConflict, CodeConflict, message)
}

// ValidationError reports rejected input with one entry per failed field.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(http.StatusBadRequest, CodeValidation, message)
	err.Details = details
	return err
}

// RateLimited reports a caller over its request budget.
func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Unprocessable reports input the store rejected on a check constraint.
func Unprocessable(message string) *AppError {
	return newError(http.StatusUnprocessableEntity, CodeUnprocessable, message)
}

// # Server Errors

// Internal hides cause behind a generic 500.
func Internal(cause error) *AppError {
	err := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// HasCode reports whether err's chain holds an [*AppError] with code.
func HasCode(err error, code string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == code
}
