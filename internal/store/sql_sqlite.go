// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
)

// NewConnectSQLite opens the database file named by cfg.DSN, creating it if
// needed, and verifies the connection.
//
// Connections use WAL journaling, enforced foreign keys and IMMEDIATE
// transactions, so two read-modify-write transactions never interleave:
// the second waits up to the busy timeout for the first to finish.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	path := sqlitePath(cfg.DSN)

	// db will be in file
	if !isInMemory(cfg.DSN) {
		if err := createLocalDBFileIfNotExists(path); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(cfg))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// every connection to ":memory:" is a separate database
	if isInMemory(cfg.DSN) {
		conn.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewSQLiteErrorClassifier(),
	}

	// an in-memory database is private to its single connection
	if !isInMemory(cfg.DSN) {
		if db.reader, err = openSQLiteReader(ctx, cfg); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening read pool")
			conn.Close()
			return nil, err
		}
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to database successfully")

	return db, nil
}

func openSQLiteReader(ctx context.Context, cfg config.DB) (*sql.DB, error) {
	reader, err := sql.Open("sqlite3", sqliteReaderDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("error opening read connection to DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		reader.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err = reader.PingContext(ctx); err != nil {
		reader.Close()
		return nil, fmt.Errorf("error connecting read pool (ping): %w", err)
	}
	return reader, nil
}

// sqliteDSN appends the driver parameters the store relies on. Parameters
// already present in cfg.DSN win.
func sqliteDSN(cfg config.DB) string {
	path, rawQuery, _ := strings.Cut(cfg.DSN, "?")

	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		params = url.Values{}
	}

	setDefault := func(key, value string) {
		if params.Get(key) == "" {
			params.Set(key, value)
		}
	}
	setDefault("_foreign_keys", "on")
	setDefault("_txlock", "immediate")
	if !isInMemory(cfg.DSN) {
		setDefault("_journal_mode", "WAL")
	}
	if cfg.BusyTimeout > 0 {
		setDefault("_busy_timeout", strconv.FormatInt(cfg.BusyTimeout.Milliseconds(), 10))
	}

	return path + "?" + params.Encode()
}

// sqliteReaderDSN is sqliteDSN for the read pool: transactions begin
// DEFERRED and connections refuse writes. The journal mode is left to the
// writer, which persists it in the file.
func sqliteReaderDSN(cfg config.DB) string {
	path, rawQuery, _ := strings.Cut(sqliteDSN(cfg), "?")

	params, _ := url.ParseQuery(rawQuery)
	params.Set("_txlock", "deferred")
	params.Set("_query_only", "1")
	params.Del("_journal_mode")

	return path + "?" + params.Encode()
}

func sqlitePath(dsn string) string {
	path, _, _ := strings.Cut(dsn, "?")
	return path
}

func isInMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
