// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"net/http"
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

// Query parameter names read by [FromRequest].
const (
	ParamSearch = "q"
	ParamSort   = "sort"
)

// Fields registers how one entity type is searched, filtered and sorted.
type Fields[T any] struct {
	// Search lists the fields free text is matched against.
	Search []func(T) string
	// Filters maps a query parameter name to the field it matches exactly.
	Filters map[string]func(T) string
	// Sort holds the accessors for the sort modes.
	Sort SortKeys[T]
}

// Params is a parsed list request.
type Params struct {
	Search  string
	Filters map[string]string
	Sort    SortOption
}

/*
FromRequest parses the search text, the sort mode and every registered filter
from the query string.

Returns:
  - Params: Parsed parameters, Sort defaulting to [DefaultSort]
  - error: apperr validation error for an unknown sort mode
*/
func FromRequest[T any](request *http.Request, fields Fields[T]) (Params, error) {
	query := request.URL.Query()

	option, err := ParseSortOption(strings.TrimSpace(query.Get(ParamSort)))
	if err != nil {
		names := make([]string, len(SortOptions))
		for i, option := range SortOptions {
			names[i] = string(option)
		}
		return Params{}, apperr.ValidationError("Invalid sort option", apperr.FieldError{
			Field:   ParamSort,
			Message: "Must be one of: " + strings.Join(names, ", "),
		})
	}

	params := Params{
		Search:  query.Get(ParamSearch),
		Filters: make(map[string]string, len(fields.Filters)),
		Sort:    option,
	}
	for name := range fields.Filters {
		if value := query.Get(name); value != "" {
			params.Filters[name] = value
		}
	}

	return params, nil
}

// Apply runs search, then each filter, then the sort.
func Apply[T any](items []T, params Params, fields Fields[T]) []T {
	result := FilterBySearch(items, params.Search, fields.Search...)
	for name, value := range params.Filters {
		result = FilterByField(result, fields.Filters[name], value)
	}
	return SortItems(result, params.Sort, fields.Sort)
}
