// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table

import (
	"fmt"
	"time"
)

// Row is one record of a collection, keyed by column name.
//
// Drivers decode integer columns into different widths (int32 for integer,
// int64 for bigint), so the typed getters accept any integer kind.
type Row map[string]any

// # Typed Getters

// Int64 returns the column as int64, or 0 when absent or NULL.
func (r Row) Int64(column string) int64 {
	if value := r.Int64Ptr(column); value != nil {
		return *value
	}
	return 0
}

// Int64Ptr returns the column as *int64, or nil when absent or NULL.
func (r Row) Int64Ptr(column string) *int64 {
	number, ok := toInt64(r[column])
	if !ok {
		return nil
	}
	return &number
}

// IntPtr returns the column as *int, or nil when absent or NULL.
func (r Row) IntPtr(column string) *int {
	number, ok := toInt64(r[column])
	if !ok {
		return nil
	}
	converted := int(number)
	return &converted
}

// String returns the column as a string, or "" when absent or NULL.
func (r Row) String(column string) string {
	if value := r.StringPtr(column); value != nil {
		return *value
	}
	return ""
}

// StringPtr returns the column as *string, or nil when absent or NULL.
func (r Row) StringPtr(column string) *string {
	switch value := r[column].(type) {
	case string:
		return &value
	case *string:
		return value
	case fmt.Stringer:
		text := value.String()
		return &text
	}
	return nil
}

// Time returns the column as time.Time, or the zero time when absent or NULL.
func (r Row) Time(column string) time.Time {
	if value := r.TimePtr(column); value != nil {
		return *value
	}
	return time.Time{}
}

// TimePtr returns the column as *time.Time, or nil when absent or NULL.
func (r Row) TimePtr(column string) *time.Time {
	switch value := r[column].(type) {
	case time.Time:
		return &value
	case *time.Time:
		return value
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return nil
		}
		return &parsed
	}
	return nil
}

func toInt64(value any) (int64, bool) {
	switch number := value.(type) {
	case int:
		return int64(number), true
	case int8:
		return int64(number), true
	case int16:
		return int64(number), true
	case int32:
		return int64(number), true
	case int64:
		return number, true
	case uint:
		return int64(number), true
	case uint8:
		return int64(number), true
	case uint16:
		return int64(number), true
	case uint32:
		return int64(number), true
	case uint64:
		return int64(number), true
	case float32:
		return int64(number), true
	case float64:
		return int64(number), true
	case *int:
		if number == nil {
			return 0, false
		}
		return int64(*number), true
	case *int64:
		if number == nil {
			return 0, false
		}
		return *number, true
	}
	return 0, false
}
