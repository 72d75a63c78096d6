// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-keeper/internal/apperr"
	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// testCreds is a credentials record with a valid signing key. The verifier
// is opaque to services; tests pair it with a mocked KeyChain.
func testCreds(seed byte) models.Credentials {
	return models.Credentials{
		PasswordHashed: base64.StdEncoding.EncodeToString([]byte("verifier")),
		SigningKey:     base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{seed}, 32)),
	}
}

func credsJSON(t *testing.T, creds models.Credentials) string {
	t.Helper()
	b, err := json.Marshal(creds)
	require.NoError(t, err)
	return string(b)
}

// fixedClock returns a clock stuck at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// newTestStorages opens a migrated SQLite file in a temp dir.
func newTestStorages(t *testing.T) *store.Storages {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.Storage{
		DB: config.DB{
			DSN:          filepath.Join(t.TempDir(), "ledger.db"),
			BusyTimeout:  5 * time.Second,
			MaxOpenConns: 4,
		},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	return storages
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind.String(), apperr.KindOf(err).String(), "error: %v", err)
}
