// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

type configWriteOp int

const (
	configKeep configWriteOp = iota
	configPut
	configDelete
)

// ConfigWrite is the outcome of a [ConfigUpdater]: keep the row, replace
// its value, or delete it.
type ConfigWrite struct {
	op    configWriteOp
	value string
}

// KeepConfig leaves the stored value untouched. No statement is issued.
func KeepConfig() ConfigWrite { return ConfigWrite{op: configKeep} }

// PutConfig inserts or replaces the stored value.
func PutConfig(value string) ConfigWrite { return ConfigWrite{op: configPut, value: value} }

// DeleteConfig removes the row.
func DeleteConfig() ConfigWrite { return ConfigWrite{op: configDelete} }

// IsDelete reports whether the write removes the row.
func (w ConfigWrite) IsDelete() bool { return w.op == configDelete }

// Value returns the value a put stores, and false for keep and delete.
func (w ConfigWrite) Value() (string, bool) { return w.value, w.op == configPut }

// PutConfigJSON is [PutConfig] with v serialized as JSON.
func PutConfigJSON(v any) (ConfigWrite, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return ConfigWrite{}, fmt.Errorf("%w: %w", ErrEncodingConfig, err)
	}
	return PutConfig(string(b)), nil
}

// ConfigUpdater computes the new value from the current one (nil when absent).
type ConfigUpdater func(current *string) (ConfigWrite, error)

// configRepository is the SQLite implementation of [ConfigRepository]
// over the "configs" table.
type configRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewConfigRepository constructs a [ConfigRepository] on db.
func NewConfigRepository(db *DB, logger *logger.Logger) ConfigRepository {
	logger.Debug().Msg("creating config repository")
	return &configRepository{
		db:     db,
		logger: logger,
	}
}

func (r *configRepository) Get(ctx context.Context, key models.ConfigKey) (string, bool, error) {
	return getConfig(ctx, r.db, key)
}

func (r *configRepository) Update(ctx context.Context, key models.ConfigKey, updater ConfigUpdater) error {
	log := logger.FromContext(ctx)

	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		value, found, err := getConfig(ctx, tx, key)
		if err != nil {
			return err
		}

		var current *string
		if found {
			current = &value
		}

		write, err := updater(current)
		if err != nil {
			log.Debug().Err(err).Str("func", "configRepository.Update").Str("name", key.Name).Msg("updater rejected change")
			return err
		}

		switch write.op {
		case configPut:
			_, err = tx.ExecContext(ctx, upsertConfig, key.Name, key.ID, write.value)
		case configDelete:
			_, err = tx.ExecContext(ctx, deleteConfig, key.Name, key.ID)
		default:
			return nil
		}
		if err != nil {
			log.Err(err).Str("func", "configRepository.Update").Str("name", key.Name).Msg("failed to write config")
			return r.db.classify(ErrExecutingStatement, err)
		}

		return nil
	})
}

func getConfig(ctx context.Context, exec Executor, key models.ConfigKey) (string, bool, error) {
	var value string
	err := exec.QueryRowContext(ctx, selectConfig, key.Name, key.ID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "getConfig").Str("name", key.Name).Msg("failed to read config")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, true, nil
}

// GetConfigJSON reads the value under key and decodes it as JSON into T.
func GetConfigJSON[T any](ctx context.Context, repo ConfigRepository, key models.ConfigKey) (T, bool, error) {
	var result T

	value, found, err := repo.Get(ctx, key)
	if err != nil || !found {
		return result, found, err
	}

	if err = json.Unmarshal([]byte(value), &result); err != nil {
		return result, false, fmt.Errorf("%w: %s/%s: %w", ErrDecodingConfig, key.Name, key.ID, err)
	}
	return result, true, nil
}

// UpdateConfig is [ConfigRepository.Update] for updaters that also produce
// a result for the caller. The result is returned only when the
// transaction committed.
func UpdateConfig[R any](ctx context.Context, repo ConfigRepository, key models.ConfigKey, fn func(current *string) (R, ConfigWrite, error)) (R, error) {
	var (
		result R
		zero   R
	)

	err := repo.Update(ctx, key, func(current *string) (ConfigWrite, error) {
		r, write, err := fn(current)
		if err != nil {
			return ConfigWrite{}, err
		}
		result = r
		return write, nil
	})
	if err != nil {
		return zero, err
	}

	return result, nil
}
