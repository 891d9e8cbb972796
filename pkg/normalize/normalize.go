// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package normalize cleans user-submitted form values before they are persisted.

Optional text is trimmed and collapses to "absent" when empty. Counters are
floored and never negative.
*/
package normalize

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CleanOptional trims value and returns nil when nothing is left.
func CleanOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Count floors a submitted number and clamps it at zero.
//
// Absent and NaN inputs stay absent.
func Count(value *float64) *int {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}
	count := max(0, int(math.Floor(*value)))
	return &count
}

// CountOrZero is [Count] with 0 in place of absent.
func CountOrZero(value *float64) int {
	if count := Count(value); count != nil {
		return *count
	}
	return 0
}

// Whole floors a submitted number without clamping, so range checks still see
// negative input.
func Whole(value *float64) *int {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}
	whole := int(math.Floor(*value))
	return &whole
}

// Initials returns up to two upper-case initials of a name ("Ada Lovelace" -> "AL").
func Initials(name string) string {
	var builder strings.Builder
	for _, word := range strings.Fields(name) {
		first, _ := utf8.DecodeRuneInString(word)
		builder.WriteRune(unicode.ToUpper(first))
		if utf8.RuneCountInString(builder.String()) == 2 {
			break
		}
	}
	return builder.String()
}
