// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads bodies, path parameters and the caller from a request.
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// MaxBodyBytes caps JSON request bodies. Chapter summaries are the largest field.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes the body into target. Any failure is reported as
// [validate.ErrInvalidJSON].
func DecodeJSON(request *http.Request, target any) error {
	body := http.MaxBytesReader(nil, request.Body, MaxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param returns a chi path parameter as is.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntID parses a path parameter as a positive row id.
func IntID(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(Param(request, name), 10, 64)
	if err != nil || id < 1 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return id, nil
}

// ParamReturnFrom is the query parameter naming the page a flow started from.
const ParamReturnFrom = "from"

var returnRoutes = map[string]string{
	"dashboard":   "/",
	"manuscripts": "/manuscripts",
	"chapters":    "/chapters",
	"characters":  "/characters",
	"notes":       "/notes",
}

// ReturnTo maps ?from= onto a client path. Unknown values yield fallback.
func ReturnTo(request *http.Request, fallback string) string {
	if path, ok := returnRoutes[request.URL.Query().Get(ParamReturnFrom)]; ok {
		return path
	}
	return fallback
}

// RequiredUserID returns the authenticated caller or a 401 error.
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.UserID(request.Context())
	if userID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
