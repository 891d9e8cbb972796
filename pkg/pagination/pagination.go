// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides an optional page window over in-memory list results.
//
// # Overview
//
// List endpoints filter and sort the whole collection first. A window is
// applied last, and only when the client asks for one with "limit".
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/inkwell/pkg/convert"
)

const (
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
//
// A zero Limit means "everything".
type Params struct {
	Page  int
	Limit int
}

// Offset returns the index of the first item of the page. It saturates at
// [math.MaxInt] instead of overflowing.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	switch {
	case params.Limit > 0:
		totalPages = (total + params.Limit - 1) / params.Limit
	case total > 0:
		totalPages = 1
	}

	page := params.Page
	if page < 1 {
		page = DefaultPage
	}

	return Meta{
		Page:       page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// A missing or invalid page becomes [DefaultPage]. A missing or non-positive
// limit disables the window, and a limit above [MaxLimit] is clamped.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	page := convert.ToIntD(query.Get("page"), DefaultPage)
	limit := convert.ToIntD(query.Get("limit"), 0)

	if page < 1 {
		page = DefaultPage
	}

	switch {
	case limit < 0:
		limit = 0
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Window returns the slice of items covered by params. A page past the end
// yields an empty slice.
func Window[T any](items []T, params Params) []T {
	if params.Limit <= 0 {
		return items
	}

	pages := (len(items) + params.Limit - 1) / params.Limit
	if params.Page-1 >= pages {
		return items[:0]
	}

	start := min(params.Offset(), len(items))
	end := min(start+params.Limit, len(items))
	return items[start:end]
}
