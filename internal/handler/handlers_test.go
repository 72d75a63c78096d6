// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/service"
)

func TestNewHandlers_HTTP(t *testing.T) {
	cfg := config.Defaults()

	h, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.HTTPAddress = ""

	h, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

	assert.Nil(t, h)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNoHandlersAreCreated))
}
