// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/migrations"
)

// DB is the shared connection pool plus the driver-specific error classifier.
//
// reader, when set, is a second pool whose transactions begin DEFERRED and
// cannot write. List queries run there so they read a WAL snapshot instead
// of queueing for the write lock.
type DB struct {
	*sql.DB
	reader             *sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Executor is satisfied by both *sql.DB and *sql.Tx, so query helpers can
// run inside a caller's transaction or directly on the pool.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Migrate applies the embedded schema.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB)
}

// InTx runs fn inside one transaction. The transaction is committed when fn
// returns nil and rolled back on every other path, including panics and
// context cancellation. Errors returned by fn are passed through unchanged.
func (db *DB) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return db.inTx(ctx, db.DB, fn)
}

// InReadTx is [DB.InTx] on the read pool. fn must not write.
func (db *DB) InReadTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if db.reader == nil {
		return db.inTx(ctx, db.DB, fn)
	}
	return db.inTx(ctx, db.reader, fn)
}

func (db *DB) inTx(ctx context.Context, pool *sql.DB, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := pool.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.InTx").Msg("failed to begin transaction")
		return db.classify(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "DB.InTx").Msg("failed to commit transaction")
		return db.classify(ErrCommitingTransaction, err)
	}

	return nil
}

// Close releases both pools.
func (db *DB) Close() error {
	var readerErr error
	if db.reader != nil {
		readerErr = db.reader.Close()
	}
	if err := db.DB.Close(); err != nil {
		return err
	}
	return readerErr
}

// classify wraps a driver error with sentinel and, when the driver reports a
// transient lock conflict, with [ErrRetryable] as well.
func (db *DB) classify(sentinel error, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrRetryable, sentinel, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
