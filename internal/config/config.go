// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// ledger server. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token lifetimes, upload limits and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the embedded database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and request timeout.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration of the persistence backend.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level values controlling token lifecycle,
// attachment handling and versioning.
type App struct {
	// SessionTokenDuration is how long a bearer token stays valid.
	// Env: APP_SESSION_TOKEN_DURATION
	SessionTokenDuration time.Duration `env:"SESSION_TOKEN_DURATION"`

	// AssetTokenDuration is how long a signed attachment URL stays valid.
	// Env: APP_ASSET_TOKEN_DURATION
	AssetTokenDuration time.Duration `env:"ASSET_TOKEN_DURATION"`

	// UploadLimit is the maximum accepted attachment size in bytes.
	// Env: APP_UPLOAD_LIMIT
	UploadLimit int64 `env:"UPLOAD_LIMIT"`

	// PreviewMaxWidth caps the width of generated previews in pixels.
	// Env: APP_PREVIEW_MAX_WIDTH
	PreviewMaxWidth int `env:"PREVIEW_MAX_WIDTH"`

	// Version is the semantic version string reported by /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the SQLite database.
type DB struct {
	// DSN is the database file path, optionally with driver parameters.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// BusyTimeout is how long a writer waits for a competing transaction.
	// Env: STORAGE_DB_BUSY_TIMEOUT
	BusyTimeout time.Duration `env:"BUSY_TIMEOUT"`

	// MaxOpenConns caps the connection pool.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields left empty by every source take the values of [Defaults].
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
