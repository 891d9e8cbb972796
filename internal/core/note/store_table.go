// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"context"

	"github.com/taibuivan/inkwell/internal/platform/table"
	"github.com/taibuivan/inkwell/pkg/slice"
)

// TableRepository implements [Repository] on a [table.Table].
type TableRepository struct {
	table *table.Table
}

// NewTableRepository binds the note collection to client.
func NewTableRepository(client table.Client) *TableRepository {
	return &TableRepository{table: table.New(client, TableName)}
}

var _ Repository = (*TableRepository)(nil)

func (repository *TableRepository) List(context context.Context, userID string) ([]*Note, error) {
	return repository.selectAll(context, userID, table.OrderByDesc(ColumnDateCreated))
}

func (repository *TableRepository) ListByManuscript(context context.Context, userID string, manuscriptID int64) ([]*Note, error) {
	return repository.selectAll(context, userID,
		table.Where(ColumnManuscriptID, manuscriptID),
		table.OrderByDesc(ColumnDateCreated),
	)
}

func (repository *TableRepository) FindByID(context context.Context, userID string, id int64) (*Note, error) {
	row, err := repository.table.Owned(userID).SelectOne(context, ColumnID, id)
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

func (repository *TableRepository) Create(context context.Context, userID string, note *Note) (*Note, error) {
	row, err := repository.table.Owned(userID).Insert(context, toRow(note))
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

func (repository *TableRepository) Update(context context.Context, userID string, id int64, note *Note) (*Note, error) {
	row, err := repository.table.Owned(userID).Update(context, ColumnID, id, toRow(note))
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

func (repository *TableRepository) Delete(context context.Context, userID string, id int64) error {
	return repository.table.Owned(userID).Delete(context, ColumnID, id)
}

func (repository *TableRepository) selectAll(context context.Context, userID string, opts ...table.SelectOption) ([]*Note, error) {
	rows, err := repository.table.Owned(userID).Select(context, opts...)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, fromRow), nil
}
