// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a lookup matches no visible row. Soft-deleted
	// rows are invisible unless the caller asks for them.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when an INSERT or UPDATE violates a unique
	// constraint (username, email, phone, profile user_id).
	ErrAlreadyExists = errors.New("record already exists")

	// ErrEmptyUpdate is returned by Update when no columns were supplied.
	// No statement is sent to the database in that case.
	ErrEmptyUpdate = errors.New("no fields supplied for update")

	// ErrEmptyInsert is returned by Insert and Create when no columns were supplied.
	ErrEmptyInsert = errors.New("no fields supplied for insert")

	// ErrUnknownColumn is returned when a field or order column is not part
	// of the table descriptor.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrSoftDeleteUnsupported is returned by SoftDelete and Restore on a
	// table declared without the is_deleted flag.
	ErrSoftDeleteUnsupported = errors.New("table does not support soft delete")

	// ErrUnsupportedDSN is returned when the DSN scheme selects no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

// Token revocation and blob storage errors.
var (
	// ErrRevocationStore is returned when the revocation backend is unreachable.
	ErrRevocationStore = errors.New("token revocation store error")

	// ErrBlobNotFound is returned by Get when the object does not exist.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrInvalidBlobName is returned for names that escape the bucket.
	ErrInvalidBlobName = errors.New("invalid blob name")

	// ErrBlobStorage wraps failures of the object storage backend.
	ErrBlobStorage = errors.New("blob storage error")
)
