// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field failures into one VALIDATION_ERROR.
//
// A field keeps only its first failure, so chain rules from the broadest
// (Required) to the narrowest.
package validate

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator is a per-call accumulator. The zero value is ready to use and
// it is not safe for concurrent use.
type Validator struct {
	errs   []apperr.FieldError
	labels map[string]string
}

// Label names field in messages: "Title is required" instead of
// "This field is required".
func (v *Validator) Label(field, label string) *Validator {
	if v.labels == nil {
		v.labels = make(map[string]string)
	}
	v.labels[field] = label
	return v
}

// check records a failure. generic is used as is; labeled gets the label
// prepended and is formatted with args.
func (v *Validator) check(field string, failed bool, generic, labeled string, args ...any) *Validator {
	if !failed {
		return v
	}
	if label, ok := v.labels[field]; ok {
		v.add(field, label+" "+fmt.Sprintf(labeled, args...))
		return v
	}
	v.add(field, generic)
	return v
}

func length(value string) int {
	return utf8.RuneCountInString(strings.TrimSpace(value))
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(field, length(value) == 0, "This field is required", "is required")
}

// MinLen fails if the trimmed value has fewer than min runes.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.check(field, length(value) < min,
		fmt.Sprintf("Minimum %d characters", min), "must be at least %d characters", min)
}

// MaxLen fails if the trimmed value has more than max runes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(field, length(value) > max,
		fmt.Sprintf("Maximum %d characters", max), "must be at most %d characters", max)
}

// Range is inclusive on both ends.
func (v *Validator) Range(field string, value, min, max int) *Validator {
	return v.check(field, value < min || value > max,
		fmt.Sprintf("Must be between %d and %d", min, max), "must be between %d and %d", min, max)
}

// NonNegative fails if value is below zero.
func (v *Validator) NonNegative(field string, value int) *Validator {
	return v.check(field, value < 0, "Must be a positive number", "must be a positive number")
}

// Email fails if value is not an RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.check(field, err != nil, "Must be a valid email address", "must be a valid email address")
}

// OneOf fails if value is not one of allowed. The match is case-sensitive.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	message := "Must be one of: " + strings.Join(allowed, ", ")
	return v.check(field, !slices.Contains(allowed, value), message, "must be one of: %s", strings.Join(allowed, ", "))
}

// Custom records message when failed is true. Labels do not apply.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns the collected failures, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any rule has failed.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Failed reports whether field already has a failure.
func (v *Validator) Failed(field string) bool {
	return slices.ContainsFunc(v.errs, func(e apperr.FieldError) bool { return e.Field == field })
}

func (v *Validator) add(field, message string) {
	if !v.Failed(field) {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
}

// RequiredError builds a validation error for a single field.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
