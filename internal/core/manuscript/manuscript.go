// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manuscript manages a writer's books.

A manuscript is the root every chapter, character and note may point at. The
reference is a plain column: deleting a manuscript leaves its dependants in
place with a dangling id.
*/
package manuscript

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/table"
)

// # Storage Layout

const (
	TableName = "manuscript"

	ColumnID             = "id_manuscript"
	ColumnTitle          = "title"
	ColumnGenre          = "genre"
	ColumnStatus         = "status"
	ColumnWordCount      = "word_count"
	ColumnSummary        = "summary"
	ColumnPicture        = "picture"
	ColumnTargetAudience = "target_audience"
	ColumnDateCreated    = "date_created"
	ColumnDateUpdated    = "date_updated"
)

// Schema describes the collection for key-generating clients.
var Schema = table.Schema{Name: TableName, Key: ColumnID, Stamps: []string{ColumnDateCreated}}

// DefaultStatus is assigned when a manuscript is saved without a status.
const DefaultStatus = "Draft"

// # Entity

// Manuscript is one book project.
type Manuscript struct {
	ID             int64      `json:"id_manuscript"`
	Title          string     `json:"title"`
	Genre          *string    `json:"genre"`
	Status         *string    `json:"status"`
	WordCount      *int       `json:"word_count"`
	Summary        *string    `json:"summary"`
	Picture        *string    `json:"picture"`
	TargetAudience *string    `json:"target_audience"`
	UserID         string     `json:"id_user"`
	CreatedAt      *time.Time `json:"date_created"`
	UpdatedAt      *time.Time `json:"date_updated"`
}

// Words returns the word count, treating absent as zero.
func (m *Manuscript) Words() int {
	if m.WordCount == nil {
		return 0
	}
	return *m.WordCount
}

// Progress returns completion toward [constants.ManuscriptWordGoal] as a
// percentage capped at 100.
func (m *Manuscript) Progress() float64 {
	return Progress(m.Words(), constants.ManuscriptWordGoal)
}

// Progress returns words/target as a percentage capped at 100.
func Progress(words, target int) float64 {
	if target <= 0 {
		return 0
	}
	return min(float64(words)/float64(target)*100, 100)
}

// Input is the create/update payload.
type Input struct {
	Title          string   `json:"title"`
	Genre          *string  `json:"genre"`
	Status         *string  `json:"status"`
	WordCount      *float64 `json:"word_count"`
	Summary        *string  `json:"summary"`
	Picture        *string  `json:"picture"`
	TargetAudience *string  `json:"target_audience"`
}

// # Hydration

func fromRow(row table.Row) *Manuscript {
	return &Manuscript{
		ID:             row.Int64(ColumnID),
		Title:          row.String(ColumnTitle),
		Genre:          row.StringPtr(ColumnGenre),
		Status:         row.StringPtr(ColumnStatus),
		WordCount:      row.IntPtr(ColumnWordCount),
		Summary:        row.StringPtr(ColumnSummary),
		Picture:        row.StringPtr(ColumnPicture),
		TargetAudience: row.StringPtr(ColumnTargetAudience),
		UserID:         row.String(table.OwnerColumn),
		CreatedAt:      row.TimePtr(ColumnDateCreated),
		UpdatedAt:      row.TimePtr(ColumnDateUpdated),
	}
}

// toRow lists the writable columns. Absent optionals are left out entirely.
func toRow(m *Manuscript) table.Row {
	return table.Row{
		ColumnTitle:          m.Title,
		ColumnGenre:          table.Opt(m.Genre),
		ColumnStatus:         table.Opt(m.Status),
		ColumnWordCount:      table.Opt(m.WordCount),
		ColumnSummary:        table.Opt(m.Summary),
		ColumnPicture:        table.Opt(m.Picture),
		ColumnTargetAudience: table.Opt(m.TargetAudience),
	}
}
