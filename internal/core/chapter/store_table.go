// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

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

// NewTableRepository binds the chapter collection to client.
func NewTableRepository(client table.Client) *TableRepository {
	return &TableRepository{table: table.New(client, TableName), now: time.Now}
}

var _ Repository = (*TableRepository)(nil)

func (repository *TableRepository) List(context context.Context, userID string) ([]*Chapter, error) {
	return repository.selectAll(context, userID, table.OrderByDesc(ColumnDateCreated))
}

func (repository *TableRepository) ListByManuscript(context context.Context, userID string, manuscriptID int64) ([]*Chapter, error) {
	return repository.selectAll(context, userID,
		table.Where(ColumnManuscriptID, manuscriptID),
		table.OrderBy(ColumnNumber),
	)
}

func (repository *TableRepository) FindByID(context context.Context, userID string, id int64) (*Chapter, error) {
	row, err := repository.table.Owned(userID).SelectOne(context, ColumnID, id)
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

func (repository *TableRepository) Create(context context.Context, userID string, chapter *Chapter) (*Chapter, error) {
	row, err := repository.table.Owned(userID).Insert(context, toRow(chapter))
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

func (repository *TableRepository) Update(context context.Context, userID string, id int64, chapter *Chapter) (*Chapter, error) {
	values := toRow(chapter)
	values[ColumnLastEdit] = repository.now().UTC()

	row, err := repository.table.Owned(userID).Update(context, ColumnID, id, values)
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}

func (repository *TableRepository) Delete(context context.Context, userID string, id int64) error {
	return repository.table.Owned(userID).Delete(context, ColumnID, id)
}

func (repository *TableRepository) selectAll(context context.Context, userID string, opts ...table.SelectOption) ([]*Chapter, error) {
	rows, err := repository.table.Owned(userID).Select(context, opts...)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, fromRow), nil
}
