// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
)

// Storages bundles every repository over one database.
type Storages struct {
	ConfigRepository      ConfigRepository
	AttachmentRepository  AttachmentRepository
	TransactionRepository TransactionRepository
	TagRepository         TagRepository
	AccountRepository     AccountRepository

	db *DB
}

// NewStorages connects to the database, applies migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB builds the repositories on an already migrated db.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		ConfigRepository:      NewConfigRepository(db, log),
		AttachmentRepository:  NewAttachmentRepository(db, log),
		TransactionRepository: NewTransactionRepository(db, log),
		TagRepository:         NewTagRepository(db, log),
		AccountRepository:     NewAccountRepository(db, log),
		db:                    db,
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}
	return nil
}
