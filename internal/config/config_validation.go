// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.MaxOpenConns < 0 || cfg.Storage.DB.BusyTimeout < 0 {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.SessionTokenDuration <= 0 || cfg.App.AssetTokenDuration <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}

	if cfg.App.UploadLimit <= 0 || cfg.App.PreviewMaxWidth <= 0 {
		return fmt.Errorf("%w: upload limit and preview width must be positive", ErrInvalidAppConfigs)
	}

	return nil
}
