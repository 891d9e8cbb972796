// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer converts between values and the optional pointers used by
// entities and request payloads.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, or returns the zero value when p is nil.
func Val[T any](p *T) T {
	var zero T
	return Or(p, zero)
}

// Or dereferences p, or returns def when p is nil.
func Or[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
