// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listing filters and orders in-memory result sets.

List endpoints fetch a user's whole collection once and then narrow it here:
a free-text search across several fields, exact-match field filters, and one
of six sort modes. Every function is pure. Inputs are never mutated.

Field access goes through typed accessor functions registered per entity in a
[Fields] value, so an unknown field name is a compile error, not a silent miss.
*/
package listing

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption selects an ordering mode.
type SortOption string

// Supported sort modes.
const (
	SortRecent           SortOption = "recent"
	SortOldest           SortOption = "oldest"
	SortAlphabetical     SortOption = "alphabetical"
	SortAlphabeticalDesc SortOption = "alphabetical-desc"
	SortStatus           SortOption = "status"
	SortWordCount        SortOption = "word-count"
)

// DefaultSort is applied when no mode is requested.
const DefaultSort = SortRecent

// SortOptions lists every accepted mode.
var SortOptions = []SortOption{
	SortRecent, SortOldest, SortAlphabetical, SortAlphabeticalDesc, SortStatus, SortWordCount,
}

// ParseSortOption validates a mode name. An empty name yields [DefaultSort].
func ParseSortOption(name string) (SortOption, error) {
	if name == "" {
		return DefaultSort, nil
	}
	option := SortOption(name)
	if slices.Contains(SortOptions, option) {
		return option, nil
	}
	return "", fmt.Errorf("listing: unknown sort option %q", name)
}

// # Search & Filter

// FilterBySearch keeps the items where any field contains text, ignoring case.
//
// Whitespace-only text returns items itself, unfiltered and uncopied.
func FilterBySearch[T any](items []T, text string, fields ...func(T) string) []T {
	if strings.TrimSpace(text) == "" {
		return items
	}

	needle := strings.ToLower(text)
	result := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			value := field(item)
			if value != "" && strings.Contains(strings.ToLower(value), needle) {
				result = append(result, item)
				break
			}
		}
	}
	return result
}

// FilterByField keeps the items whose field equals value exactly.
//
// An empty value returns items itself.
func FilterByField[T any](items []T, field func(T) string, value string) []T {
	if value == "" || field == nil {
		return items
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if field(item) == value {
			result = append(result, item)
		}
	}
	return result
}

// # Sorting

// statusRank orders workflow states. Unknown states rank last.
var statusRank = map[string]int{
	"completed":   1,
	"in progress": 2,
	"draft":       3,
}

const unrankedStatus = 999

// SortKeys holds the accessors a sort mode reads.
//
// A nil accessor disables the modes that depend on it: they return a copy in
// input order.
type SortKeys[T any] struct {
	// Date drives recent and oldest. The zero time counts as the epoch.
	Date func(T) time.Time
	// Text drives alphabetical and alphabetical-desc.
	Text func(T) string
	// Status drives status.
	Status func(T) string
	// Number drives word-count. nil counts as 0.
	Number func(T) *int
}

/*
SortItems returns a new, stably ordered slice.

Modes:
  - recent / oldest: by Date, descending / ascending.
  - alphabetical / alphabetical-desc: by lowercased Text, locale-aware.
  - status: completed, in progress, draft, then anything else.
  - word-count: by Number, descending.

Ties keep their input order. The input slice is never reordered.
*/
func SortItems[T any](items []T, option SortOption, keys SortKeys[T]) []T {
	sorted := slices.Clone(items)
	if sorted == nil {
		sorted = []T{}
	}

	switch option {
	case SortRecent, SortOldest:
		if keys.Date == nil {
			break
		}
		slices.SortStableFunc(sorted, func(a, b T) int {
			delta := compareInt64(epochMillis(keys.Date(a)), epochMillis(keys.Date(b)))
			if option == SortRecent {
				return -delta
			}
			return delta
		})

	case SortAlphabetical, SortAlphabeticalDesc:
		if keys.Text == nil {
			break
		}
		collator := acquireCollator()
		defer releaseCollator(collator)
		slices.SortStableFunc(sorted, func(a, b T) int {
			delta := collator.CompareString(strings.ToLower(keys.Text(a)), strings.ToLower(keys.Text(b)))
			if option == SortAlphabeticalDesc {
				return -delta
			}
			return delta
		})

	case SortStatus:
		if keys.Status == nil {
			break
		}
		slices.SortStableFunc(sorted, func(a, b T) int {
			return rank(keys.Status(a)) - rank(keys.Status(b))
		})

	case SortWordCount:
		if keys.Number == nil {
			break
		}
		slices.SortStableFunc(sorted, func(a, b T) int {
			return deref(keys.Number(b)) - deref(keys.Number(a))
		})
	}

	return sorted
}

func rank(status string) int {
	if value, ok := statusRank[strings.ToLower(status)]; ok {
		return value
	}
	return unrankedStatus
}

func epochMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UnixMilli()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func deref(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

// collate.Collator keeps a scratch buffer and is not safe for concurrent use.
var collators = sync.Pool{
	New: func() any { return collate.New(language.Und) },
}

func acquireCollator() *collate.Collator { return collators.Get().(*collate.Collator) }

func releaseCollator(collator *collate.Collator) { collators.Put(collator) }
