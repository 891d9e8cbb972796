// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package note manages free-form research and planning notes.
package note

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/table"
)

const (
	TableName = "note"

	ColumnID           = "id_note"
	ColumnTitle        = "title"
	ColumnContent      = "content"
	ColumnCategory     = "category"
	ColumnPriority     = "priority"
	ColumnManuscriptID = "id_manuscript"
	ColumnDateCreated  = "date_created"
)

// FilterManuscript narrows a list to one manuscript's notes.
const FilterManuscript = "manuscript"

// Priorities a note may carry.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Priorities lists the accepted priority values in ascending order.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

var Schema = table.Schema{Name: TableName, Key: ColumnID, Stamps: []string{ColumnDateCreated}}

type Note struct {
	ID           int64      `json:"id_note"`
	Title        string     `json:"title"`
	Content      *string    `json:"content"`
	Category     *string    `json:"category"`
	Priority     *string    `json:"priority"`
	ManuscriptID *int64     `json:"id_manuscript"`
	UserID       string     `json:"id_user"`
	CreatedAt    *time.Time `json:"date_created"`
}

// Input is the create/update payload.
type Input struct {
	Title        string  `json:"title"`
	Content      *string `json:"content"`
	Category     *string `json:"category"`
	Priority     *string `json:"priority"`
	ManuscriptID *int64  `json:"id_manuscript"`
}

func fromRow(row table.Row) *Note {
	return &Note{
		ID:           row.Int64(ColumnID),
		Title:        row.String(ColumnTitle),
		Content:      row.StringPtr(ColumnContent),
		Category:     row.StringPtr(ColumnCategory),
		Priority:     row.StringPtr(ColumnPriority),
		ManuscriptID: row.Int64Ptr(ColumnManuscriptID),
		UserID:       row.String(table.OwnerColumn),
		CreatedAt:    row.TimePtr(ColumnDateCreated),
	}
}

func toRow(n *Note) table.Row {
	return table.Row{
		ColumnTitle:        n.Title,
		ColumnContent:      table.Opt(n.Content),
		ColumnCategory:     table.Opt(n.Category),
		ColumnPriority:     table.Opt(n.Priority),
		ColumnManuscriptID: table.Opt(n.ManuscriptID),
	}
}
