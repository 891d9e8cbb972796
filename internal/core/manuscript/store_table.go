// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manuscript

import (
	"context"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/table"
	"github.com/taibuivan/inkwell/pkg/slice"
)

// TableRepository implements [Repository] on a [table.Table].
type TableRepository struct {
	table *table.Table
	now   func() time.Time
}

// NewTableRepository binds the manuscript collection to client.
func NewTableRepository(client table.Client) *TableRepository {
	return &TableRepository{table: table.New(client, TableName), now: time.Now}
}

var _ Repository = (*TableRepository)(nil)

// List implements [Repository].
func (repository *TableRepository) List(context context.Context, userID string) ([]*Manuscript, error) {
	rows, err := repository.table.Owned(userID).Select(context, table.OrderByDesc(ColumnDateCreated))
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, fromRow), nil
}

// FindByID implements [Repository].
func (repository *TableRepository) FindByID(context context.Context, userID string, id int64) (*Manuscript, error) {
	row, err := repository.table.Owned(userID).SelectOne(context, ColumnID, id)
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

// Create implements [Repository].
func (repository *TableRepository) Create(context context.Context, userID string, manuscript *Manuscript) (*Manuscript, error) {
	row, err := repository.table.Owned(userID).Insert(context, toRow(manuscript))
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

// Update implements [Repository].
func (repository *TableRepository) Update(context context.Context, userID string, id int64, manuscript *Manuscript) (*Manuscript, error) {
	values := toRow(manuscript)
	values[ColumnDateUpdated] = repository.now().UTC()

	row, err := repository.table.Owned(userID).Update(context, ColumnID, id, values)
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

// Delete implements [Repository].
func (repository *TableRepository) Delete(context context.Context, userID string, id int64) error {
	return repository.table.Owned(userID).Delete(context, ColumnID, id)
}
