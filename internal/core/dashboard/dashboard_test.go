// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/inkwell/internal/core/chapter"
	"github.com/taibuivan/inkwell/internal/core/character"
	"github.com/taibuivan/inkwell/internal/core/dashboard"
	"github.com/taibuivan/inkwell/internal/core/manuscript"
	"github.com/taibuivan/inkwell/internal/core/note"
	"github.com/taibuivan/inkwell/internal/platform/listing"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// staticLister serves a fixed list, or blocks until cancelled when err is set.
type staticLister[T any] struct {
	items []T
	err   error
	wait  bool
}

func (lister staticLister[T]) List(ctx context.Context, _ string, _ listing.Params) ([]T, error) {
	if lister.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return lister.items, lister.err
}

func newService(sources dashboard.Sources) *dashboard.Service {
	return dashboard.NewService(sources, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestFormatNumber checks the abbreviation thresholds.
*/
func TestFormatNumber(t *testing.T) {
	tests := map[int]string{
		0:         "0",
		999:       "999",
		1000:      "1.0K",
		1234:      "1.2K",
		999_949:   "999.9K",
		1_000_000: "1.0M",
		3_400_000: "3.4M",
	}
	for value, expected := range tests {
		assert.Equal(t, expected, dashboard.FormatNumber(value), value)
	}
}

/*
TestSummary derives counts, words and the three most recent entries.
*/
func TestSummary(t *testing.T) {
	service := newService(dashboard.Sources{
		Manuscripts: staticLister[*manuscript.Manuscript]{items: []*manuscript.Manuscript{
			{ID: 1, Title: "Orbit", WordCount: pointer.To(25_000)},
			{ID: 2, Title: "Harbour"},
		}},
		Characters: staticLister[*character.Character]{items: []*character.Character{
			{ID: 1, Name: "mara quell"},
		}},
		Chapters: staticLister[*chapter.Chapter]{items: []*chapter.Chapter{
			{ID: 1, WordCount: pointer.To(1_000)},
			{ID: 2, WordCount: pointer.To(300)},
			{ID: 3},
			{ID: 4, WordCount: pointer.To(200)},
		}},
		Notes: staticLister[*note.Note]{},
	})

	summary, err := service.Summary(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, []dashboard.Stat{
		{Title: dashboard.StatManuscripts, Value: 2, Display: "2"},
		{Title: dashboard.StatCharacters, Value: 1, Display: "1"},
		{Title: dashboard.StatChapters, Value: 4, Display: "4"},
		{Title: dashboard.StatNotes, Value: 0, Display: "0"},
		{Title: dashboard.StatTotalWords, Value: 26_500, Display: "26.5K"},
	}, summary.Stats)

	require.Len(t, summary.Manuscripts, 2)
	assert.Equal(t, 50.0, summary.Manuscripts[0].Progress)
	assert.Equal(t, 0.0, summary.Manuscripts[1].Progress)
	assert.Equal(t, "25,000", summary.Manuscripts[0].WordsDisplay)
	assert.Equal(t, "0", summary.Manuscripts[1].WordsDisplay)
	assert.Equal(t, "MQ", summary.Characters[0].Initials)
	assert.Len(t, summary.Chapters, 3)
	assert.NotNil(t, summary.Notes)
	assert.Empty(t, summary.Notes)
}

/*
TestSummary_FirstFailureCancels returns the failing fetch and releases the others.
*/
func TestSummary_FirstFailureCancels(t *testing.T) {
	failure := errors.New("backend down")

	service := newService(dashboard.Sources{
		Manuscripts: staticLister[*manuscript.Manuscript]{wait: true},
		Characters:  staticLister[*character.Character]{wait: true},
		Chapters:    staticLister[*chapter.Chapter]{err: failure},
		Notes:       staticLister[*note.Note]{wait: true},
	})

	summary, err := service.Summary(context.Background(), "alice")
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, failure)
}
