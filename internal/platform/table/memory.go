// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgerrcode"
)

// Schema describes a collection for clients that generate keys themselves.
type Schema struct {
	// Name is the collection name.
	Name string
	// Key is the auto-increment primary key column. Empty means none.
	Key string
	// Stamps lists the columns that default to the current time on insert.
	Stamps []string
}

// # Memory Client

// MemoryClient is an in-process [Client] used by tests and local runs.
//
// It mimics the PostgreSQL client: auto-increment keys, `now()` defaults,
// NULLS LAST ascending ordering and a SQLSTATE on unknown collections.
type MemoryClient struct {
	mu      sync.RWMutex
	schemas map[string]Schema
	rows    map[string][]Row
	next    map[string]int64
	now     func() time.Time
	calls   atomic.Int64
}

// NewMemoryClient creates an empty store with the given collections.
func NewMemoryClient(schemas ...Schema) *MemoryClient {
	client := &MemoryClient{
		schemas: make(map[string]Schema, len(schemas)),
		rows:    make(map[string][]Row, len(schemas)),
		next:    make(map[string]int64, len(schemas)),
		now:     time.Now,
	}
	for _, schema := range schemas {
		client.schemas[schema.Name] = schema
		client.rows[schema.Name] = nil
		client.next[schema.Name] = 1
	}
	return client
}

// WithClock replaces the time source used for stamp columns.
func (c *MemoryClient) WithClock(now func() time.Time) *MemoryClient {
	c.now = now
	return c
}

// Calls reports how many operations reached the client.
func (c *MemoryClient) Calls() int {
	return int(c.calls.Load())
}

// Select implements [Client].
func (c *MemoryClient) Select(ctx context.Context, name string, query Query) ([]Row, error) {
	if err := c.enter(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	stored, err := c.collection(name)
	if err != nil {
		return nil, err
	}

	result := make([]Row, 0, len(stored))
	for _, row := range stored {
		if matches(row, query.Filters) {
			result = append(result, row.Clone())
		}
	}

	if len(query.Orders) > 0 {
		slices.SortStableFunc(result, func(a, b Row) int {
			return compareRows(a, b, query.Orders)
		})
	}

	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}

	return result, nil
}

// Insert implements [Client].
func (c *MemoryClient) Insert(ctx context.Context, name string, values Row) (Row, error) {
	if err := c.enter(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.collection(name); err != nil {
		return nil, err
	}
	schema := c.schemas[name]

	row := make(Row, len(values)+len(schema.Stamps)+1)
	for column, value := range values {
		row[column] = normalize(value)
	}

	if schema.Key != "" {
		if _, set := row[schema.Key]; !set {
			row[schema.Key] = c.next[name]
			c.next[name]++
		}
	}

	now := c.now()
	for _, column := range schema.Stamps {
		if _, set := row[column]; !set {
			row[column] = now
		}
	}

	c.rows[name] = append(c.rows[name], row)
	return row.Clone(), nil
}

// Update implements [Client].
func (c *MemoryClient) Update(ctx context.Context, name string, filters []Filter, values Row) (Row, error) {
	if err := c.enter(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.collection(name)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, row := range stored {
		if !matches(row, filters) {
			continue
		}
		if index >= 0 {
			return nil, &Error{Op: OpUpdate, Table: name, Message: "update matched more than one row"}
		}
		index = i
	}
	if index < 0 {
		return nil, ErrNotFound
	}

	updated := stored[index].Clone()
	for column, value := range values {
		updated[column] = normalize(value)
	}
	stored[index] = updated

	return updated.Clone(), nil
}

// Delete implements [Client].
func (c *MemoryClient) Delete(ctx context.Context, name string, filters []Filter) error {
	if err := c.enter(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.collection(name)
	if err != nil {
		return err
	}

	kept := stored[:0:0]
	for _, row := range stored {
		if !matches(row, filters) {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(stored) {
		return ErrNotFound
	}

	c.rows[name] = kept
	return nil
}

// enter counts the call and honours cancellation.
func (c *MemoryClient) enter(ctx context.Context) error {
	c.calls.Add(1)
	return ctx.Err()
}

func (c *MemoryClient) collection(name string) ([]Row, error) {
	stored, ok := c.rows[name]
	if !ok {
		return nil, &Error{
			Table:   name,
			Code:    pgerrcode.UndefinedTable,
			Message: fmt.Sprintf("relation %q does not exist", name),
		}
	}
	return stored, nil
}

// # Value Semantics

func matches(row Row, filters []Filter) bool {
	for _, filter := range filters {
		if !equal(row[filter.Column], normalize(filter.Value)) {
			return false
		}
	}
	return true
}

// normalize widens integers to int64 and dereferences pointers so that
// values written by different callers compare equal.
func normalize(value any) any {
	if number, ok := toInt64(value); ok {
		switch value.(type) {
		case float32, float64:
		default:
			return number
		}
	}
	switch typed := value.(type) {
	case float32:
		return float64(typed)
	case *string:
		if typed == nil {
			return nil
		}
		return *typed
	case *time.Time:
		if typed == nil {
			return nil
		}
		return *typed
	}
	return value
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		// NULL never equals anything, itself included.
		return false
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if fa, ok := a.(float64); ok {
		if ib, ok := b.(int64); ok {
			return fa == float64(ib)
		}
	}
	if ia, ok := a.(int64); ok {
		if fb, ok := b.(float64); ok {
			return float64(ia) == fb
		}
	}
	return a == b
}

func compareRows(a, b Row, orders []Order) int {
	for _, order := range orders {
		result := compareValues(a[order.Column], b[order.Column])
		if order.Descending {
			result = -result
		}
		if result != 0 {
			return result
		}
	}
	return 0
}

// compareValues orders NULL after every value.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	switch ta := a.(type) {
	case int64:
		if tb, ok := b.(int64); ok {
			return cmp.Compare(ta, tb)
		}
		if tb, ok := b.(float64); ok {
			return cmp.Compare(float64(ta), tb)
		}
	case float64:
		if tb, ok := b.(float64); ok {
			return cmp.Compare(ta, tb)
		}
		if tb, ok := b.(int64); ok {
			return cmp.Compare(ta, float64(tb))
		}
	case string:
		if tb, ok := b.(string); ok {
			return strings.Compare(ta, tb)
		}
	case time.Time:
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	case bool:
		if tb, ok := b.(bool); ok {
			switch {
			case ta == tb:
				return 0
			case !ta:
				return -1
			default:
				return 1
			}
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
