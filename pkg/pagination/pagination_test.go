// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/pkg/pagination"
)

/*
TestFromRequest checks defaults and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 0}},
		{"?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"?page=-2&limit=-5", pagination.Params{Page: 1, Limit: 0}},
		{"?page=abc&limit=500", pagination.Params{Page: 1, Limit: 100}},
		{"?page=9223372036854775807&limit=100", pagination.Params{Page: math.MaxInt, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/notes"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

/*
TestWindow slices the requested page and tolerates overflow.
*/
func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, items, pagination.Window(items, pagination.Params{Page: 1}))
	assert.Equal(t, []int{3, 4}, pagination.Window(items, pagination.Params{Page: 2, Limit: 2}))
	assert.Equal(t, []int{5}, pagination.Window(items, pagination.Params{Page: 3, Limit: 2}))
	assert.Empty(t, pagination.Window(items, pagination.Params{Page: 9, Limit: 2}))
}

/*
TestWindow_HugePage answers an empty page instead of overflowing the offset.
*/
func TestWindow_HugePage(t *testing.T) {
	request := httptest.NewRequest("GET", "/notes?page=9223372036854775807&limit=100", nil)
	params := pagination.FromRequest(request)

	assert.Equal(t, math.MaxInt, params.Offset())
	assert.NotPanics(t, func() {
		assert.Empty(t, pagination.Window([]int{1, 2, 3}, params))
	})
	assert.Empty(t, pagination.Window([]int{}, pagination.Params{Page: 1, Limit: 10}))
}

/*
TestNewMeta counts pages with and without a window.
*/
func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, pagination.NewMeta(pagination.Params{Page: 1, Limit: 2}, 5).TotalPages)
	assert.Equal(t, 1, pagination.NewMeta(pagination.Params{Page: 1}, 5).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(pagination.Params{Page: 1}, 0).TotalPages)
}
