// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
)

const (
	// DefaultLimit is the page size of FindAll when the query sets none.
	DefaultLimit uint64 = 100

	softDeleteColumn = "is_deleted"
	flagActive       = 0
	flagDeleted      = 1
)

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx, so the same repository
// code runs inside and outside transactions.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Table describes a relational table for [Repository].
type Table[T any] struct {
	// Name is the table name.
	Name string

	// PrimaryKey is the primary key column; "id" when empty.
	PrimaryKey string

	// Columns lists the selectable columns in the order Scan expects them.
	// Fields and order columns are checked against this list.
	Columns []string

	// SoftDelete declares that the table carries the is_deleted flag.
	SoftDelete bool

	// TouchColumn, when set, is refreshed with CURRENT_TIMESTAMP on Update.
	TouchColumn string

	// Scan reads one row in Columns order.
	Scan func(row RowScanner) (T, error)
}

func (t Table[T]) primaryKey() string {
	if t.PrimaryKey == "" {
		return "id"
	}
	return t.PrimaryKey
}

func (t Table[T]) hasColumn(column string) bool {
	return slices.Contains(t.Columns, column)
}

// Fields maps column names to values for inserts and updates.
type Fields map[string]any

// Set stores value under column and returns f for chaining.
func (f Fields) Set(column string, value any) Fields {
	f[column] = value
	return f
}

// checkColumns rejects keys that are not columns of t or that name the
// primary key.
func checkColumns[T any](t Table[T], fields Fields) error {
	for column := range fields {
		if column == t.primaryKey() || !t.hasColumn(column) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, column)
		}
	}
	return nil
}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

func (o Order) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// Query selects a page of rows for FindAll.
type Query struct {
	// Filter is an optional predicate, e.g. squirrel.Eq{"username": name}.
	Filter sq.Sqlizer

	// Limit caps the number of rows; DefaultLimit when zero.
	Limit uint64

	// Offset skips rows before the page.
	Offset uint64

	// OrderBy defaults to the primary key descending.
	OrderBy []Order

	// IncludeDeleted disables the soft-delete filter.
	IncludeDeleted bool
}

// Result reports the outcome of a write. RowsAffected counts every row the
// statement matched: Postgres and SQLite do not report rows left unchanged
// separately, so there is no distinct changed-rows count.
type Result struct {
	RowsAffected int64
}
