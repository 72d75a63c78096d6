// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults returns the configuration used for every field no source sets.
func Defaults() StructuredConfig {
	return StructuredConfig{
		App: App{
			SessionTokenDuration: 120 * 24 * time.Hour,
			AssetTokenDuration:   10 * time.Minute,
			UploadLimit:          20 << 20,
			PreviewMaxWidth:      1024,
			Version:              "dev",
		},
		Storage: Storage{
			DB: DB{
				DSN:          "ledger.db",
				BusyTimeout:  5 * time.Second,
				MaxOpenConns: 4,
			},
		},
		Server: Server{
			HTTPAddress:    "0.0.0.0:4000",
			RequestTimeout: 30 * time.Second,
		},
	}
}
