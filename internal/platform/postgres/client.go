// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/table"
)

// Querier is the subset of [pgxpool.Pool] the client needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// Client implements [table.Client] on a PostgreSQL schema.
//
// Statements are generated per call. Identifiers are quoted with
// [pgx.Identifier] and every value travels as a bind parameter.
type Client struct {
	db     Querier
	schema string
}

var _ table.Client = (*Client)(nil)

// NewClient binds the client to a schema (e.g. "core").
func NewClient(db Querier, schema string) *Client {
	return &Client{db: db, schema: schema}
}

/*
Select runs `SELECT * FROM schema.table WHERE ... ORDER BY ... LIMIT n`.

Returns:
  - []table.Row: One map per row, keyed by column name
  - error: Driver failures
*/
func (client *Client) Select(ctx context.Context, name string, query table.Query) ([]table.Row, error) {
	var statement strings.Builder
	statement.WriteString("SELECT * FROM ")
	statement.WriteString(client.identifier(name))

	args := make([]any, 0, len(query.Filters))
	writeWhere(&statement, query.Filters, &args)

	if len(query.Orders) > 0 {
		parts := make([]string, 0, len(query.Orders))
		for _, order := range query.Orders {
			direction := "ASC"
			if order.Descending {
				direction = "DESC"
			}
			parts = append(parts, pgx.Identifier{order.Column}.Sanitize()+" "+direction)
		}
		statement.WriteString(" ORDER BY ")
		statement.WriteString(strings.Join(parts, ", "))
	}

	if query.Limit > 0 {
		fmt.Fprintf(&statement, " LIMIT %d", query.Limit)
	}

	rows, err := client.db.Query(ctx, statement.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_select_failed: %w", err)
	}

	return collect(rows)
}

/*
Insert runs `INSERT INTO schema.table (...) VALUES (...) RETURNING *`.

Columns are written in sorted order so identical inputs produce identical
statements and share the prepared statement cache.
*/
func (client *Client) Insert(ctx context.Context, name string, values table.Row) (table.Row, error) {
	var statement strings.Builder
	statement.WriteString("INSERT INTO ")
	statement.WriteString(client.identifier(name))

	columns := sortedColumns(values)
	args := make([]any, 0, len(columns))

	if len(columns) == 0 {
		statement.WriteString(" DEFAULT VALUES")
	} else {
		quoted := make([]string, 0, len(columns))
		placeholders := make([]string, 0, len(columns))
		for _, column := range columns {
			args = append(args, values[column])
			quoted = append(quoted, pgx.Identifier{column}.Sanitize())
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		fmt.Fprintf(&statement, " (%s) VALUES (%s)", strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	}
	statement.WriteString(" RETURNING *")

	rows, err := client.db.Query(ctx, statement.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_insert_failed: %w", err)
	}

	return single(rows)
}

/*
Update runs `UPDATE schema.table SET ... WHERE ... RETURNING *`.

With no values to set it degrades to a select of the matched row, so the
caller still gets the current state back.
*/
func (client *Client) Update(ctx context.Context, name string, filters []table.Filter, values table.Row) (table.Row, error) {
	columns := sortedColumns(values)
	if len(columns) == 0 {
		rows, err := client.Select(ctx, name, table.Query{Filters: filters, Limit: 2})
		if err != nil {
			return nil, err
		}
		return exactlyOne(rows)
	}

	var statement strings.Builder
	statement.WriteString("UPDATE ")
	statement.WriteString(client.identifier(name))

	args := make([]any, 0, len(columns)+len(filters))
	assignments := make([]string, 0, len(columns))
	for _, column := range columns {
		args = append(args, values[column])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", pgx.Identifier{column}.Sanitize(), len(args)))
	}
	statement.WriteString(" SET ")
	statement.WriteString(strings.Join(assignments, ", "))

	writeWhere(&statement, filters, &args)
	statement.WriteString(" RETURNING *")

	rows, err := client.db.Query(ctx, statement.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_update_failed: %w", err)
	}

	return single(rows)
}

// Delete runs `DELETE FROM schema.table WHERE ...`.
func (client *Client) Delete(ctx context.Context, name string, filters []table.Filter) error {
	var statement strings.Builder
	statement.WriteString("DELETE FROM ")
	statement.WriteString(client.identifier(name))

	args := make([]any, 0, len(filters))
	writeWhere(&statement, filters, &args)

	tag, err := client.db.Exec(ctx, statement.String(), args...)
	if err != nil {
		return fmt.Errorf("postgres_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return table.ErrNotFound
	}

	return nil
}

// # Statement Helpers

func (client *Client) identifier(name string) string {
	if client.schema == "" {
		return pgx.Identifier{name}.Sanitize()
	}
	return pgx.Identifier{client.schema, name}.Sanitize()
}

// writeWhere appends `WHERE a = $n AND ...`. A nil value becomes IS NULL.
func writeWhere(statement *strings.Builder, filters []table.Filter, args *[]any) {
	if len(filters) == 0 {
		return
	}

	predicates := make([]string, 0, len(filters))
	for _, filter := range filters {
		column := pgx.Identifier{filter.Column}.Sanitize()
		if filter.Value == nil {
			predicates = append(predicates, column+" IS NULL")
			continue
		}
		*args = append(*args, filter.Value)
		predicates = append(predicates, fmt.Sprintf("%s = $%d", column, len(*args)))
	}

	statement.WriteString(" WHERE ")
	statement.WriteString(strings.Join(predicates, " AND "))
}

func sortedColumns(values table.Row) []string {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	slices.Sort(columns)
	return columns
}

func collect(rows pgx.Rows) ([]table.Row, error) {
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("postgres_collect_failed: %w", err)
	}

	result := make([]table.Row, len(maps))
	for i, row := range maps {
		result[i] = table.Row(row)
	}
	return result, nil
}

func single(rows pgx.Rows) (table.Row, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, table.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_collect_failed: %w", err)
	}
	return table.Row(row), nil
}

func exactlyOne(rows []table.Row) (table.Row, error) {
	switch len(rows) {
	case 0:
		return nil, table.ErrNotFound
	case 1:
		return rows[0], nil
	default:
		return nil, errors.New("postgres: more than one row matched")
	}
}
