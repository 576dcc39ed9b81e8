// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// postgresError returns the SQLSTATE code of err, or "" when err does not
// come from PostgreSQL.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// sqliteError returns the extended result code of err, or 0 when err does
// not come from SQLite.
func sqliteError(err error) sqlite3.ErrNoExtended {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode
	}

	return 0
}

// isUniqueViolation reports whether err is a unique or primary key
// constraint violation in any supported dialect.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return true
	}

	switch sqliteError(err) {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return true
	}

	return false
}

// classify maps driver errors to store sentinels. Errors without a mapping
// are wrapped with fallback.
func classify(err, fallback error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}

	return fmt.Errorf("%w: %w", fallback, err)
}
