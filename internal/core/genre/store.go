// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"

	"github.com/taibuivan/inkwell/internal/platform/table"
	"github.com/taibuivan/inkwell/pkg/slice"
)

type Repository interface {
	// List returns every genre ordered by category, then name.
	List(context context.Context) ([]*Genre, error)
	Create(context context.Context, name, category string) (*Genre, error)
}

type TableRepository struct {
	table *table.Table
}

func NewTableRepository(client table.Client) *TableRepository {
	return &TableRepository{table: table.New(client, TableName)}
}

var _ Repository = (*TableRepository)(nil)

func (repository *TableRepository) List(context context.Context) ([]*Genre, error) {
	rows, err := repository.table.Select(context, table.OrderBy(ColumnCategory), table.OrderBy(ColumnName))
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, fromRow), nil
}

func (repository *TableRepository) Create(context context.Context, name, category string) (*Genre, error) {
	row, err := repository.table.Insert(context, table.Row{ColumnName: name, ColumnCategory: category})
	if err != nil {
		return nil, err
	}
	return fromRow(row), nil
}
