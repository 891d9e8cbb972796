// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table

import (
	"log/slog"
	"math"
	"strings"
)

// undefined marks a column the caller did not set.
type undefined struct{}

// Undefined is the value of a column that must not be sent at all.
//
// It differs from nil: nil is written as NULL and clears the column, while
// Undefined is stripped by [Sanitize] and leaves the column untouched.
var Undefined any = undefined{}

// Opt returns *p, or [Undefined] when p is nil.
func Opt[T any](p *T) any {
	if p == nil {
		return Undefined
	}
	return *p
}

// # Sanitisation

/*
Sanitize returns a copy of values that is safe to send to the backend.

Rules:
  - Undefined entries are removed.
  - NaN numbers become 0 when the column is `word_count` or its name contains
    "count" or "id_". Any other NaN entry is removed.

All other entries, nil included, pass through unchanged.
*/
func Sanitize(values Row) Row {
	cleaned := make(Row, len(values))

	for column, value := range values {
		if _, skip := value.(undefined); skip {
			continue
		}

		if isNaN(value) {
			if countLike(column) {
				slog.Warn("table_nan_coerced", slog.String("column", column))
				cleaned[column] = 0
			}
			continue
		}

		cleaned[column] = value
	}

	return cleaned
}

// countLike reports whether a column holds a required counter or reference.
func countLike(column string) bool {
	return column == "word_count" ||
		strings.Contains(column, "count") ||
		strings.Contains(column, "id_")
}

func isNaN(value any) bool {
	switch number := value.(type) {
	case float64:
		return math.IsNaN(number)
	case float32:
		return math.IsNaN(float64(number))
	case *float64:
		return number != nil && math.IsNaN(*number)
	}
	return false
}
