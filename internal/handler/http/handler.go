// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// uploadLimit caps the body of an attachment upload, in bytes.
	uploadLimit int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Int64("upload_limit", cfg.UploadLimit).Msg("http handler created")
	return &Handler{
		services:    services,
		uploadLimit: cfg.UploadLimit,
		logger:      logger,
	}
}
