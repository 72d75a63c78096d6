// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_SESSION_TOKEN_DURATION": "48h",
		"APP_ASSET_TOKEN_DURATION":   "5m",
		"APP_UPLOAD_LIMIT":           "1048576",
		"APP_PREVIEW_MAX_WIDTH":      "640",
		"APP_VERSION":                "1.2.3",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "15s",

		"STORAGE_DB_DATABASE_URI":   "/var/lib/ledger/ledger.db",
		"STORAGE_DB_BUSY_TIMEOUT":   "2s",
		"STORAGE_DB_MAX_OPEN_CONNS": "8",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, 48*time.Hour, cfg.App.SessionTokenDuration)
	assert.Equal(t, 5*time.Minute, cfg.App.AssetTokenDuration)
	assert.Equal(t, int64(1<<20), cfg.App.UploadLimit)
	assert.Equal(t, 640, cfg.App.PreviewMaxWidth)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "/var/lib/ledger/ledger.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Second, cfg.Storage.DB.BusyTimeout)
	assert.Equal(t, 8, cfg.Storage.DB.MaxOpenConns)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_SESSION_TOKEN_DURATION": "forever"})

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_Empty(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Zero(t, cfg.App.SessionTokenDuration)
}
