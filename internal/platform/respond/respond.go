// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes every HTTP response body of the API.

Successful payloads travel under "data", list windows add "meta", and
mutations may add "return_to". Errors use [ErrorEnvelope].
*/
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// # Envelopes

// SuccessEnvelope wraps a single payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps one window of a list.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// MutationEnvelope wraps a created or updated entity and the path the client
// should navigate to next.
type MutationEnvelope struct {
	Data     any    `json:"data,omitempty"`
	ReturnTo string `json:"return_to,omitempty"`
}

// ErrorEnvelope is the body of every 4xx and 5xx response.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// # Writers

// JSON writes payload with statusCode.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes 200 with data.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes 201 with data.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes 200 with one list window and its metadata.
func Paginated(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

/*
Mutated writes the result of a create, update or delete.

A non-empty returnTo is sent both as the X-Return-To header and as the
"return_to" field. With [http.StatusNoContent] only the header is sent.
*/
func Mutated(writer http.ResponseWriter, statusCode int, data any, returnTo string) {
	if returnTo != "" {
		writer.Header().Set(constants.HeaderXReturnTo, returnTo)
	}
	if statusCode == http.StatusNoContent {
		NoContent(writer)
		return
	}
	JSON(writer, statusCode, MutationEnvelope{Data: data, ReturnTo: returnTo})
}

// NoContent writes 204.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error maps err to its status and writes an [ErrorEnvelope].

Errors that are not an [apperr.AppError] become INTERNAL_ERROR. Every 5xx is
logged with its cause, which never reaches the client.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
