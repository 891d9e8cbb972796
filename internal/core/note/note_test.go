// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/core/note"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/listing"
	"github.com/taibuivan/inkwell/internal/platform/notify"
	"github.com/taibuivan/inkwell/internal/platform/table"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

func newService(t *testing.T) (*note.Service, *table.MemoryClient, *notify.Recorder) {
	t.Helper()

	current := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	client := table.NewMemoryClient(note.Schema).WithClock(func() time.Time {
		current = current.Add(time.Minute)
		return current
	})
	recorder := &notify.Recorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return note.NewService(note.NewTableRepository(client), recorder, logger), client, recorder
}

func titles(notes []*note.Note) []string {
	result := make([]string, len(notes))
	for i, n := range notes {
		result[i] = n.Title
	}
	return result
}

/*
TestCreate_Validation covers the title, content, category and priority rules.
*/
func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   note.Input
		details []apperr.FieldError
	}{
		{"missing title", note.Input{}, []apperr.FieldError{{Field: "title", Message: "Title is required"}}},
		{"short title", note.Input{Title: "a"}, []apperr.FieldError{{Field: "title", Message: "Title must be at least 2 characters"}}},
		{
			"long content",
			note.Input{Title: "Map", Content: pointer.To(strings.Repeat("c", 10001))},
			[]apperr.FieldError{{Field: "content", Message: "Content must be at most 10000 characters"}},
		},
		{
			"long category",
			note.Input{Title: "Map", Category: pointer.To(strings.Repeat("c", 101))},
			[]apperr.FieldError{{Field: "category", Message: "Category must be at most 100 characters"}},
		},
		{
			"unknown priority",
			note.Input{Title: "Map", Priority: pointer.To("Urgent")},
			[]apperr.FieldError{{Field: "priority", Message: "Must be one of: Low, Medium, High"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, client, _ := newService(t)

			_, err := service.Create(context.Background(), "alice", tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Equal(t, tt.details, appErr.Details)
			assert.Zero(t, client.Calls())
		})
	}
}

/*
TestCreate_BlankPriority treats a blank priority as absent.
*/
func TestCreate_BlankPriority(t *testing.T) {
	service, _, _ := newService(t)

	created, err := service.Create(context.Background(), "alice", note.Input{Title: "Map", Priority: pointer.To(" ")})
	require.NoError(t, err)
	assert.Nil(t, created.Priority)
}

/*
TestList_Filters narrows by category and priority and searches content.
*/
func TestList_Filters(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	for _, input := range []note.Input{
		{Title: "Harbour map", Category: pointer.To("Worldbuilding"), Priority: pointer.To(note.PriorityHigh)},
		{Title: "Names", Category: pointer.To("Research"), Content: pointer.To("Old harbour guild names")},
		{Title: "Timeline", Category: pointer.To("Worldbuilding"), Priority: pointer.To(note.PriorityLow)},
	} {
		_, err := service.Create(ctx, "alice", input)
		require.NoError(t, err)
	}

	all, err := service.List(ctx, "alice", listing.Params{Sort: listing.DefaultSort})
	require.NoError(t, err)
	assert.Equal(t, []string{"Timeline", "Names", "Harbour map"}, titles(all))

	world, err := service.List(ctx, "alice", listing.Params{
		Filters: map[string]string{note.ColumnCategory: "Worldbuilding", note.ColumnPriority: note.PriorityLow},
		Sort:    listing.DefaultSort,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Timeline"}, titles(world))

	searched, err := service.List(ctx, "alice", listing.Params{Search: "HARBOUR", Sort: listing.SortOldest})
	require.NoError(t, err)
	assert.Equal(t, []string{"Harbour map", "Names"}, titles(searched))
}

/*
TestListByManuscript returns the newest notes first.
*/
func TestListByManuscript(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := service.Create(ctx, "alice", note.Input{Title: title, ManuscriptID: pointer.To(int64(2))})
		require.NoError(t, err)
	}

	notes, err := service.ListByManuscript(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Third", "Second", "First"}, titles(notes))
}

// failingRepository fails every write with a backend error.
type failingRepository struct {
	note.Repository
}

func (failingRepository) Delete(context.Context, string, int64) error {
	return &table.Error{Op: table.OpDelete, Table: note.TableName, Code: "08006", Err: errors.New("connection lost")}
}

/*
TestDelete_BackendFailure raises the delete toast and a 500.
*/
func TestDelete_BackendFailure(t *testing.T) {
	recorder := &notify.Recorder{}
	service := note.NewService(failingRepository{}, recorder, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := service.Delete(context.Background(), "alice", 1)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, notify.Recorded{UserID: "alice", Kind: notify.KindError, Message: "Error deleting note"}, recorder.Last())
}
