// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard assembles the writer's home screen.

It reads the four entity lists in parallel and derives counts, the total word
count and the most recent entries of each kind.
*/
package dashboard

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/taibuivan/inkwell/internal/core/chapter"
	"github.com/taibuivan/inkwell/internal/core/character"
	"github.com/taibuivan/inkwell/internal/core/manuscript"
	"github.com/taibuivan/inkwell/internal/core/note"
	"github.com/taibuivan/inkwell/pkg/slice"
)

// Stat titles, in display order.
const (
	StatManuscripts = "Manuscripts"
	StatCharacters  = "Characters"
	StatChapters    = "Chapters"
	StatNotes       = "Notes"
	StatTotalWords  = "Total Words"
)

// Stat is one tile of the stats grid.
type Stat struct {
	Title string `json:"title"`
	Value int    `json:"value"`
	// Display is Value formatted for the tile.
	Display string `json:"display"`
}

// ManuscriptCard is a recent manuscript with its progress toward the word goal.
type ManuscriptCard struct {
	*manuscript.Manuscript
	Progress float64 `json:"progress"`
	// WordsDisplay is the word count with thousands separators.
	WordsDisplay string `json:"words_display"`
}

func newManuscriptCard(m *manuscript.Manuscript) ManuscriptCard {
	return ManuscriptCard{
		Manuscript:   m,
		Progress:     m.Progress(),
		WordsDisplay: humanize.Comma(int64(m.Words())),
	}
}

// CharacterCard is a recent character with its avatar initials.
type CharacterCard struct {
	*character.Character
	Initials string `json:"initials"`
}

// Summary is the dashboard payload.
type Summary struct {
	Stats       []Stat             `json:"stats"`
	Manuscripts []ManuscriptCard   `json:"manuscripts"`
	Characters  []CharacterCard    `json:"characters"`
	Chapters    []*chapter.Chapter `json:"chapters"`
	Notes       []*note.Note       `json:"notes"`
}

/*
FormatNumber abbreviates large counts.

Values of a million or more read "3.4M", values of a thousand or more read
"1.2K", anything smaller is printed as is.
*/
func FormatNumber(value int) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(value)/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%.1fK", float64(value)/1_000)
	default:
		return strconv.Itoa(value)
	}
}

// TotalWords adds the manuscript and chapter word counts. Absent counts are zero.
func TotalWords(manuscripts []*manuscript.Manuscript, chapters []*chapter.Chapter) int {
	total := slice.Reduce(manuscripts, 0, func(sum int, m *manuscript.Manuscript) int { return sum + m.Words() })
	return slice.Reduce(chapters, total, func(sum int, c *chapter.Chapter) int { return sum + c.Words() })
}

func recent[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	return append(make([]T, 0, len(items)), items...)
}
