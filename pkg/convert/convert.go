// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package convert parses loosely typed query values.
package convert

import "strconv"

// ToIntD parses str as an int, returning def when str is empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}
