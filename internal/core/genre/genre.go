// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package genre serves the shared catalogue of genres offered on the manuscript form.
package genre

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/table"
)

const (
	TableName = "genre"

	ColumnID        = "id"
	ColumnName      = "name"
	ColumnCategory  = "category"
	ColumnCreatedAt = "created_at"
)

var Schema = table.Schema{Name: TableName, Key: ColumnID, Stamps: []string{ColumnCreatedAt}}

// Genre is one entry of the catalogue. Genres are not owned by any user.
type Genre struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"-"`
}

func fromRow(row table.Row) *Genre {
	return &Genre{
		ID:        row.Int64(ColumnID),
		Name:      row.String(ColumnName),
		Category:  row.String(ColumnCategory),
		CreatedAt: row.Time(ColumnCreatedAt),
	}
}
