// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/love-health/internal/logger"
)

// Repository provides table-agnostic CRUD over a [Table] with the
// soft-delete convention: FindByID, FindAll and Count hide rows whose
// is_deleted flag is set unless the caller opts in.
//
// A Repository is safe for concurrent use. Use [Repository.WithTx] to run
// the same operations inside a transaction.
type Repository[T any] struct {
	table   Table[T]
	q       querier
	builder sq.StatementBuilderType
}

// NewRepository binds table to the pool of db.
func NewRepository[T any](db *DB, table Table[T]) *Repository[T] {
	return &Repository[T]{
		table:   table,
		q:       db.DB,
		builder: db.builder,
	}
}

// WithTx returns a copy of the repository whose statements run on tx.
func (r *Repository[T]) WithTx(tx *sql.Tx) *Repository[T] {
	return &Repository[T]{
		table:   r.table,
		q:       tx,
		builder: r.builder,
	}
}

// Table returns the descriptor the repository was built with.
func (r *Repository[T]) Table() Table[T] {
	return r.table
}

// conditions is the single place where read predicates are assembled, so
// every read path applies the soft-delete filter the same way.
func (r *Repository[T]) conditions(filter sq.Sqlizer, includeDeleted bool) []sq.Sqlizer {
	conds := make([]sq.Sqlizer, 0, 2)
	if filter != nil {
		conds = append(conds, filter)
	}
	if r.table.SoftDelete && !includeDeleted {
		conds = append(conds, sq.Eq{softDeleteColumn: flagActive})
	}
	return conds
}

func where(b sq.SelectBuilder, conds []sq.Sqlizer) sq.SelectBuilder {
	for _, c := range conds {
		b = b.Where(c)
	}
	return b
}

// FindByID returns the row with the given primary key, or [ErrNotFound].
func (r *Repository[T]) FindByID(ctx context.Context, id int64, includeDeleted bool) (T, error) {
	log := logger.FromContext(ctx)
	var zero T

	query, args, err := where(
		r.builder.Select(r.table.Columns...).From(r.table.Name),
		r.conditions(sq.Eq{r.table.primaryKey(): id}, includeDeleted),
	).ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := r.table.Scan(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*Repository.FindByID").Str("table", r.table.Name).Msg("error scanning row")
		return zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// FindAll returns one page of rows matching q.
func (r *Repository[T]) FindAll(ctx context.Context, q Query) ([]T, error) {
	log := logger.FromContext(ctx)

	b := where(
		r.builder.Select(r.table.Columns...).From(r.table.Name),
		r.conditions(q.Filter, q.IncludeDeleted),
	)

	orderBy, err := r.orderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}
	b = b.OrderBy(orderBy...)

	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	b = b.Limit(limit)
	if q.Offset > 0 {
		b = b.Offset(q.Offset)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*Repository.FindAll").Str("table", r.table.Name).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		record, err := r.table.Scan(rows)
		if err != nil {
			log.Err(err).Str("func", "*Repository.FindAll").Str("table", r.table.Name).Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*Repository.FindAll").Str("table", r.table.Name).Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *Repository[T]) orderBy(orders []Order) ([]string, error) {
	if len(orders) == 0 {
		return []string{Order{Column: r.table.primaryKey(), Desc: true}.String()}, nil
	}

	terms := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.Column != r.table.primaryKey() && !r.table.hasColumn(o.Column) {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, r.table.Name, o.Column)
		}
		terms = append(terms, o.String())
	}
	return terms, nil
}

// Count returns the number of rows matching filter, honoring the same
// soft-delete rule as FindAll.
func (r *Repository[T]) Count(ctx context.Context, filter sq.Sqlizer, includeDeleted bool) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := where(
		r.builder.Select("COUNT(*)").From(r.table.Name),
		r.conditions(filter, includeDeleted),
	).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*Repository.Count").Str("table", r.table.Name).Msg("error counting rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}

// Insert adds a row built from fields and returns its generated primary key.
func (r *Repository[T]) Insert(ctx context.Context, fields Fields) (int64, error) {
	log := logger.FromContext(ctx)

	if len(fields) == 0 {
		return 0, ErrEmptyInsert
	}
	if err := checkColumns(r.table, fields); err != nil {
		return 0, err
	}

	query, args, err := r.builder.Insert(r.table.Name).
		SetMap(fields).
		Suffix("RETURNING " + r.table.primaryKey()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", "*Repository.Insert").Str("table", r.table.Name).Msg("error inserting row")
		return 0, classify(err, ErrExecutingStatement)
	}

	return id, nil
}

// Create inserts a row and returns it as stored, re-reading it by the
// generated primary key.
func (r *Repository[T]) Create(ctx context.Context, fields Fields) (T, error) {
	id, err := r.Insert(ctx, fields)
	if err != nil {
		var zero T
		return zero, err
	}

	return r.FindByID(ctx, id, true)
}

// Update applies a partial update of the supplied columns to the row with
// the given primary key. It does not look at the soft-delete flag.
func (r *Repository[T]) Update(ctx context.Context, id int64, fields Fields) (Result, error) {
	return r.UpdateWhere(ctx, sq.Eq{r.table.primaryKey(): id}, fields)
}

// UpdateWhere applies a partial update to every row matching filter.
// With no fields it returns [ErrEmptyUpdate] without contacting the database.
func (r *Repository[T]) UpdateWhere(ctx context.Context, filter sq.Sqlizer, fields Fields) (Result, error) {
	if len(fields) == 0 {
		return Result{}, ErrEmptyUpdate
	}
	if filter == nil {
		return Result{}, fmt.Errorf("%w: update without filter", ErrBuildingSQLQuery)
	}
	if err := checkColumns(r.table, fields); err != nil {
		return Result{}, err
	}

	b := r.builder.Update(r.table.Name).SetMap(fields)
	if touch := r.table.TouchColumn; touch != "" {
		if _, ok := fields[touch]; !ok {
			b = b.Set(touch, sq.Expr("CURRENT_TIMESTAMP"))
		}
	}

	query, args, err := b.Where(filter).ToSql()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*Repository.UpdateWhere", query, args)
}

// SoftDelete sets the deleted flag of an active row.
func (r *Repository[T]) SoftDelete(ctx context.Context, id int64) (Result, error) {
	return r.setDeleted(ctx, id, flagActive, flagDeleted)
}

// Restore clears the deleted flag of a deleted row.
func (r *Repository[T]) Restore(ctx context.Context, id int64) (Result, error) {
	return r.setDeleted(ctx, id, flagDeleted, flagActive)
}

func (r *Repository[T]) setDeleted(ctx context.Context, id int64, from, to int) (Result, error) {
	if !r.table.SoftDelete {
		return Result{}, fmt.Errorf("%w: %s", ErrSoftDeleteUnsupported, r.table.Name)
	}

	query, args, err := r.builder.Update(r.table.Name).
		Set(softDeleteColumn, to).
		Where(sq.Eq{r.table.primaryKey(): id}).
		Where(sq.Eq{softDeleteColumn: from}).
		ToSql()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*Repository.setDeleted", query, args)
}

// HardDelete removes the row unconditionally.
func (r *Repository[T]) HardDelete(ctx context.Context, id int64) (Result, error) {
	query, args, err := r.builder.Delete(r.table.Name).
		Where(sq.Eq{r.table.primaryKey(): id}).
		ToSql()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*Repository.HardDelete", query, args)
}

func (r *Repository[T]) exec(ctx context.Context, funcName, query string, args []any) (Result, error) {
	log := logger.FromContext(ctx)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Str("table", r.table.Name).Msg("error executing statement")
		return Result{}, classify(err, ErrExecutingStatement)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return Result{RowsAffected: affected}, nil
}
