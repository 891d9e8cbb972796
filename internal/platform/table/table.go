// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package table provides a generic accessor over named backend collections.

Every domain repository talks to storage through a [Table]: select all rows,
insert one row, update the single row matching a key, delete the single row
matching a key. Outgoing values are sanitised before they reach the [Client].

Architecture:

  - Client: The backend contract (PostgreSQL in production, memory in tests).
  - Table: A named collection bound to a Client, optionally scoped to an owner.
  - Row: A column-to-value map with typed getters for entity hydration.

The accessor never retries and never opens transactions. Each call is a single
round-trip whose failure is returned as an [*Error].
*/
package table

import (
	"context"
	"maps"
)

// OwnerColumn is the column every owned collection uses for row-level scoping.
const OwnerColumn = "id_user"

// # Query Model

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  any
}

// Order sorts the result set by one column.
type Order struct {
	Column     string
	Descending bool
}

// Query groups the predicates and ordering of a select.
type Query struct {
	Filters []Filter
	Orders  []Order
	// Limit caps the number of returned rows. Zero means no limit.
	Limit int
}

// Client is the backend contract behind every [Table].
//
// Update must affect at most the rows matching filters and return the single
// updated row, or [ErrNotFound] when nothing matched. Delete returns
// [ErrNotFound] when nothing matched.
type Client interface {
	Select(ctx context.Context, table string, query Query) ([]Row, error)
	Insert(ctx context.Context, table string, values Row) (Row, error)
	Update(ctx context.Context, table string, filters []Filter, values Row) (Row, error)
	Delete(ctx context.Context, table string, filters []Filter) error
}

// # Table Accessor

// Table is a named collection bound to a [Client].
//
// A Table is immutable and safe for concurrent use. [Table.Owned] returns a
// scoped copy rather than mutating the receiver.
type Table struct {
	client Client
	name   string
	owner  string
}

// New binds the collection name to a client.
func New(client Client, name string) *Table {
	return &Table{client: client, name: name}
}

// Name returns the collection name.
func (t *Table) Name() string { return t.name }

// Owned returns a copy of the table scoped to a single owner.
//
// Every read, update and delete gains an `id_user = owner` predicate and every
// insert is stamped with the owner, so one user can never see or touch
// another user's rows.
func (t *Table) Owned(owner string) *Table {
	return &Table{client: t.client, name: t.name, owner: owner}
}

// SelectOption customises a select.
type SelectOption func(*Query)

// Where adds an equality predicate.
func Where(column string, value any) SelectOption {
	return func(query *Query) {
		query.Filters = append(query.Filters, Filter{Column: column, Value: value})
	}
}

// OrderBy sorts ascending by column.
func OrderBy(column string) SelectOption {
	return func(query *Query) {
		query.Orders = append(query.Orders, Order{Column: column})
	}
}

// OrderByDesc sorts descending by column.
func OrderByDesc(column string) SelectOption {
	return func(query *Query) {
		query.Orders = append(query.Orders, Order{Column: column, Descending: true})
	}
}

// Limit caps the number of returned rows.
func Limit(n int) SelectOption {
	return func(query *Query) {
		query.Limit = n
	}
}

/*
Select fetches every row of the collection, narrowed by the given options.

Parameters:
  - ctx: context.Context (cancels the in-flight fetch)
  - opts: ...SelectOption (filters, ordering, limit)

Returns:
  - []Row: Matching rows, never nil
  - error: *Error on backend failure
*/
func (t *Table) Select(ctx context.Context, opts ...SelectOption) ([]Row, error) {
	query := Query{}
	for _, opt := range opts {
		opt(&query)
	}
	query.Filters = t.scope(query.Filters)

	rows, err := t.client.Select(ctx, t.name, query)
	if err != nil {
		return nil, wrap(OpSelect, t.name, err)
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

/*
SelectOne fetches the single row whose key column equals value.

Returns:
  - Row: The matching row
  - error: *Error wrapping ErrNotFound when nothing matches
*/
func (t *Table) SelectOne(ctx context.Context, key string, value any) (Row, error) {
	rows, err := t.Select(ctx, Where(key, value), Limit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, wrap(OpSelect, t.name, ErrNotFound)
	}
	return rows[0], nil
}

/*
Insert sanitises values and sends exactly one row.

Parameters:
  - ctx: context.Context
  - values: Row (Undefined entries are stripped, NaN numbers coerced)

Returns:
  - Row: The inserted row as stored, including generated columns
  - error: *Error on backend failure
*/
func (t *Table) Insert(ctx context.Context, values Row) (Row, error) {
	cleaned := Sanitize(values)
	if t.owner != "" {
		cleaned[OwnerColumn] = t.owner
	}

	row, err := t.client.Insert(ctx, t.name, cleaned)
	if err != nil {
		return nil, wrap(OpInsert, t.name, err)
	}
	return row, nil
}

/*
Update sanitises values and applies them to the single row matching key = value.

Parameters:
  - ctx: context.Context
  - key: string (match column, usually the primary key)
  - value: any (match value)
  - values: Row (columns to change)

Returns:
  - Row: The updated row
  - error: *Error wrapping ErrNotFound when nothing matches
*/
func (t *Table) Update(ctx context.Context, key string, value any, values Row) (Row, error) {
	cleaned := Sanitize(values)
	if t.owner != "" {
		// Ownership is not transferable through an update.
		delete(cleaned, OwnerColumn)
	}

	filters := t.scope([]Filter{{Column: key, Value: value}})
	row, err := t.client.Update(ctx, t.name, filters, cleaned)
	if err != nil {
		return nil, wrap(OpUpdate, t.name, err)
	}
	return row, nil
}

/*
Delete removes the single row matching key = value.

Dependants referencing the row are left untouched.

Returns:
  - error: *Error wrapping ErrNotFound when nothing matches
*/
func (t *Table) Delete(ctx context.Context, key string, value any) error {
	filters := t.scope([]Filter{{Column: key, Value: value}})
	if err := t.client.Delete(ctx, t.name, filters); err != nil {
		return wrap(OpDelete, t.name, err)
	}
	return nil
}

// scope appends the owner predicate when the table is owned.
func (t *Table) scope(filters []Filter) []Filter {
	if t.owner == "" {
		return filters
	}
	scoped := make([]Filter, 0, len(filters)+1)
	scoped = append(scoped, filters...)
	return append(scoped, Filter{Column: OwnerColumn, Value: t.owner})
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	return maps.Clone(r)
}
