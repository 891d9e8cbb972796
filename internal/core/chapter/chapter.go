// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the chapters of a writer's manuscripts.

Chapters may exist without a manuscript. List views can group them by
manuscript, with the loose chapters in their own bucket.
*/
package chapter

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/table"
)

// # Storage Layout

const (
	TableName = "chapter"

	ColumnID           = "id_chapter"
	ColumnName         = "name_chapter"
	ColumnNumber       = "chapter_number"
	ColumnContent      = "content"
	ColumnStatus       = "status"
	ColumnSummary      = "summary"
	ColumnWordCount    = "word_count"
	ColumnManuscriptID = "id_manuscript"
	ColumnDateCreated  = "date_created"
	ColumnLastEdit     = "last_edit"
)

// Query parameters specific to chapter lists.
const (
	FilterManuscript  = "manuscript"
	ParamGroup        = "group"
	GroupByManuscript = "manuscript"

	noManuscriptGroupID = "no-manuscript"
)

// Schema describes the collection for key-generating clients.
var Schema = table.Schema{Name: TableName, Key: ColumnID, Stamps: []string{ColumnDateCreated}}

// Chapter is one chapter of a manuscript, or a loose chapter with no manuscript.
type Chapter struct {
	ID           int64      `json:"id_chapter"`
	Name         string     `json:"name_chapter"`
	Number       *int       `json:"chapter_number"`
	Content      *string    `json:"content"`
	Status       *string    `json:"status"`
	Summary      *string    `json:"summary"`
	WordCount    *int       `json:"word_count"`
	ManuscriptID *int64     `json:"id_manuscript"`
	UserID       string     `json:"id_user"`
	CreatedAt    *time.Time `json:"date_created"`
	LastEdit     *time.Time `json:"last_edit"`
}

// Words returns the word count, treating absent as zero.
func (c *Chapter) Words() int {
	if c.WordCount == nil {
		return 0
	}
	return *c.WordCount
}

// Input is the create/update payload.
type Input struct {
	Name         string   `json:"name_chapter"`
	Number       *float64 `json:"chapter_number"`
	Content      *string  `json:"content"`
	Status       *string  `json:"status"`
	Summary      *string  `json:"summary"`
	WordCount    *float64 `json:"word_count"`
	ManuscriptID *int64   `json:"id_manuscript"`
}

func fromRow(row table.Row) *Chapter {
	return &Chapter{
		ID:           row.Int64(ColumnID),
		Name:         row.String(ColumnName),
		Number:       row.IntPtr(ColumnNumber),
		Content:      row.StringPtr(ColumnContent),
		Status:       row.StringPtr(ColumnStatus),
		Summary:      row.StringPtr(ColumnSummary),
		WordCount:    row.IntPtr(ColumnWordCount),
		ManuscriptID: row.Int64Ptr(ColumnManuscriptID),
		UserID:       row.String(table.OwnerColumn),
		CreatedAt:    row.TimePtr(ColumnDateCreated),
		LastEdit:     row.TimePtr(ColumnLastEdit),
	}
}

func toRow(c *Chapter) table.Row {
	return table.Row{
		ColumnName:         c.Name,
		ColumnNumber:       table.Opt(c.Number),
		ColumnContent:      table.Opt(c.Content),
		ColumnStatus:       table.Opt(c.Status),
		ColumnSummary:      table.Opt(c.Summary),
		ColumnWordCount:    table.Opt(c.WordCount),
		ColumnManuscriptID: table.Opt(c.ManuscriptID),
	}
}
