// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/table"
)

var chapterSchema = table.Schema{Name: "chapter", Key: "id_chapter", Stamps: []string{"date_created"}}

func newChapters() (*table.MemoryClient, *table.Table) {
	client := table.NewMemoryClient(chapterSchema)
	return client, table.New(client, "chapter")
}

/*
TestSanitize covers undefined stripping and NaN coercion.
*/
func TestSanitize(t *testing.T) {
	cleaned := table.Sanitize(table.Row{
		"word_count":    math.NaN(),
		"view_count":    math.NaN(),
		"id_manuscript": math.NaN(),
		"ratio":         math.NaN(),
		"summary":       table.Undefined,
		"status":        nil,
		"name_chapter":  "Prologue",
	})

	assert.Equal(t, table.Row{
		"word_count":    0,
		"view_count":    0,
		"id_manuscript": 0,
		"status":        nil,
		"name_chapter":  "Prologue",
	}, cleaned)
}

/*
TestSanitize_DoesNotMutateInput verifies the caller's map is left intact.
*/
func TestSanitize_DoesNotMutateInput(t *testing.T) {
	input := table.Row{"summary": table.Undefined, "word_count": math.NaN()}
	_ = table.Sanitize(input)

	assert.Len(t, input, 2)
	assert.Equal(t, table.Undefined, input["summary"])
}

/*
TestOpt distinguishes unset from explicit values.
*/
func TestOpt(t *testing.T) {
	var missing *string
	title := "Draft"

	assert.Equal(t, table.Undefined, table.Opt(missing))
	assert.Equal(t, "Draft", table.Opt(&title))
}

/*
TestTable_InsertSelectRoundTrip checks an inserted row comes back exactly once.
*/
func TestTable_InsertSelectRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, chapters := newChapters()

	inserted, err := chapters.Insert(ctx, table.Row{
		"name_chapter": "Opening",
		"word_count":   math.NaN(),
		"tension":      math.NaN(),
		"summary":      table.Undefined,
	})
	require.NoError(t, err)

	id := inserted.Int64("id_chapter")
	assert.Equal(t, int64(1), id)
	assert.False(t, inserted.Time("date_created").IsZero())

	rows, err := chapters.Select(ctx)
	require.NoError(t, err)

	count := 0
	for _, row := range rows {
		if row.Int64("id_chapter") == id {
			count++
			assert.Equal(t, "Opening", row.String("name_chapter"))
			assert.Equal(t, int64(0), row.Int64("word_count"))
			assert.NotContains(t, row, "tension")
			assert.NotContains(t, row, "summary")
		}
	}
	assert.Equal(t, 1, count)
}

/*
TestTable_Update changes only the matched row and returns it.
*/
func TestTable_Update(t *testing.T) {
	ctx := context.Background()
	_, chapters := newChapters()

	first, err := chapters.Insert(ctx, table.Row{"name_chapter": "One", "summary": "keep"})
	require.NoError(t, err)
	_, err = chapters.Insert(ctx, table.Row{"name_chapter": "Two"})
	require.NoError(t, err)

	updated, err := chapters.Update(ctx, "id_chapter", first.Int64("id_chapter"), table.Row{
		"name_chapter": "One (revised)",
		"summary":      table.Undefined,
	})
	require.NoError(t, err)
	assert.Equal(t, "One (revised)", updated.String("name_chapter"))
	assert.Equal(t, "keep", updated.String("summary"))

	second, err := chapters.SelectOne(ctx, "id_chapter", int64(2))
	require.NoError(t, err)
	assert.Equal(t, "Two", second.String("name_chapter"))
}

/*
TestTable_Update_UndefinedVsNil keeps an unset column and clears a nil one.
*/
func TestTable_Update_UndefinedVsNil(t *testing.T) {
	ctx := context.Background()
	_, chapters := newChapters()

	row, err := chapters.Insert(ctx, table.Row{"name_chapter": "One", "summary": "keep", "content": "drop"})
	require.NoError(t, err)

	var cleared *string
	updated, err := chapters.Update(ctx, "id_chapter", row.Int64("id_chapter"), table.Row{
		"summary": table.Opt(cleared),
		"content": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "keep", updated.String("summary"))
	assert.Nil(t, updated.StringPtr("content"))
}

/*
TestTable_Update_NotFound reports a missing row.
*/
func TestTable_Update_NotFound(t *testing.T) {
	_, chapters := newChapters()

	_, err := chapters.Update(context.Background(), "id_chapter", 42, table.Row{"name_chapter": "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrNotFound)

	var tableError *table.Error
	require.True(t, errors.As(err, &tableError))
	assert.Equal(t, table.OpUpdate, tableError.Op)
	assert.Equal(t, "chapter", tableError.Table)
}

/*
TestTable_Delete removes exactly one row and reports a second delete as missing.
*/
func TestTable_Delete(t *testing.T) {
	ctx := context.Background()
	_, chapters := newChapters()

	row, err := chapters.Insert(ctx, table.Row{"name_chapter": "Gone"})
	require.NoError(t, err)
	_, err = chapters.Insert(ctx, table.Row{"name_chapter": "Stays"})
	require.NoError(t, err)

	require.NoError(t, chapters.Delete(ctx, "id_chapter", row.Int64("id_chapter")))

	rows, err := chapters.Select(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Stays", rows[0].String("name_chapter"))

	err = chapters.Delete(ctx, "id_chapter", row.Int64("id_chapter"))
	assert.ErrorIs(t, err, table.ErrNotFound)
}

/*
TestTable_SelectOrdering sorts with NULLs last ascending and first descending.
*/
func TestTable_SelectOrdering(t *testing.T) {
	ctx := context.Background()
	_, chapters := newChapters()

	for _, values := range []table.Row{
		{"name_chapter": "C", "chapter_number": 3, "id_manuscript": 1},
		{"name_chapter": "A", "chapter_number": 1, "id_manuscript": 1},
		{"name_chapter": "N", "chapter_number": nil, "id_manuscript": 1},
		{"name_chapter": "B", "chapter_number": 2, "id_manuscript": 2},
	} {
		_, err := chapters.Insert(ctx, values)
		require.NoError(t, err)
	}

	rows, err := chapters.Select(ctx, table.Where("id_manuscript", int64(1)), table.OrderBy("chapter_number"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "N"}, names(rows))

	rows, err = chapters.Select(ctx, table.OrderByDesc("chapter_number"))
	require.NoError(t, err)
	assert.Equal(t, []string{"N", "C", "B", "A"}, names(rows))

	rows, err = chapters.Select(ctx, table.OrderBy("name_chapter"), table.Limit(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(rows))
}

/*
TestTable_Owned keeps each owner's rows invisible to the others.
*/
func TestTable_Owned(t *testing.T) {
	ctx := context.Background()
	_, chapters := newChapters()

	alice := chapters.Owned("alice")
	bob := chapters.Owned("bob")

	row, err := alice.Insert(ctx, table.Row{"name_chapter": "Alice's", "id_user": "bob"})
	require.NoError(t, err)
	assert.Equal(t, "alice", row.String("id_user"))

	rows, err := bob.Select(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = bob.Update(ctx, "id_chapter", row.Int64("id_chapter"), table.Row{"name_chapter": "stolen"})
	assert.ErrorIs(t, err, table.ErrNotFound)
	assert.ErrorIs(t, bob.Delete(ctx, "id_chapter", row.Int64("id_chapter")), table.ErrNotFound)

	updated, err := alice.Update(ctx, "id_chapter", row.Int64("id_chapter"), table.Row{"id_user": "bob"})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.String("id_user"))
}

/*
TestTable_Cancelled refuses to run once the context is done.
*/
func TestTable_Cancelled(t *testing.T) {
	client, chapters := newChapters()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chapters.Select(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.Calls())
}

/*
TestTable_UnknownCollection surfaces the backend code.
*/
func TestTable_UnknownCollection(t *testing.T) {
	client := table.NewMemoryClient()

	_, err := table.New(client, "ghost").Select(context.Background())

	var tableError *table.Error
	require.True(t, errors.As(err, &tableError))
	assert.Equal(t, "42P01", tableError.Code)
}

/*
TestRow_Getters reads mixed driver widths.
*/
func TestRow_Getters(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	row := table.Row{
		"a": int32(7),
		"b": "text",
		"c": now,
		"d": nil,
	}

	assert.Equal(t, int64(7), row.Int64("a"))
	assert.Equal(t, 7, *row.IntPtr("a"))
	assert.Equal(t, "text", row.String("b"))
	assert.Equal(t, now, row.Time("c"))
	assert.Nil(t, row.StringPtr("d"))
	assert.Nil(t, row.IntPtr("d"))
	assert.Nil(t, row.TimePtr("missing"))
}

func names(rows []table.Row) []string {
	result := make([]string, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.String("name_chapter"))
	}
	return result
}
