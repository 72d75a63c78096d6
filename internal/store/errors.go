// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAttachmentNotFound is returned when no attachment has the requested id.
	ErrAttachmentNotFound = errors.New("attachment was not found")

	// ErrDecodingConfig is returned when a stored config value is not valid
	// JSON for the requested type.
	ErrDecodingConfig = errors.New("error decoding stored config value")

	// ErrEncodingConfig is returned when a config value cannot be serialized.
	ErrEncodingConfig = errors.New("error encoding config value")

	// ErrDecodingRow is returned when a stored column holds data the
	// repository cannot interpret (e.g. a malformed timestamp).
	ErrDecodingRow = errors.New("error decoding stored row")

	// ErrRetryable marks a failure caused by a competing transaction. The
	// operation may succeed if the caller retries it.
	ErrRetryable = errors.New("transient database conflict")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
