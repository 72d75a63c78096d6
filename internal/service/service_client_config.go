// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/internal/validators"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

type clientConfigService struct {
	configRepository store.ConfigRepository
	validator        validators.Validator

	logger *logger.Logger
}

func NewClientConfigService(configRepository store.ConfigRepository, validator validators.Validator, logger *logger.Logger) ClientConfigService {
	return &clientConfigService{
		configRepository: configRepository,
		validator:        validator,
		logger:           logger,
	}
}

// GetClientConfig returns a nil Value for a setting that was never stored.
func (c *clientConfigService) GetClientConfig(ctx context.Context, name string) (models.ClientConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ClientConfig{}, errEmptyConfigName
	}

	value, found, err := c.configRepository.Get(ctx, clientConfigKey(name))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "clientConfigService.GetClientConfig").Str("name", name).Msg("failed to read client config")
		return models.ClientConfig{}, toAppError(err)
	}

	cfg := models.ClientConfig{Name: name}
	if found {
		cfg.Value = &value
	}
	return cfg, nil
}

// SetClientConfig stores cfg.Value, or deletes the setting when it is nil.
// Writing the current value again is a no-op.
func (c *clientConfigService) SetClientConfig(ctx context.Context, cfg models.ClientConfig) error {
	if err := c.validator.Validate(ctx, cfg); err != nil {
		return toAppError(err)
	}

	err := c.configRepository.Update(ctx, clientConfigKey(strings.TrimSpace(cfg.Name)), func(current *string) (store.ConfigWrite, error) {
		switch {
		case cfg.Value == nil:
			return store.DeleteConfig(), nil
		case current != nil && *current == *cfg.Value:
			return store.KeepConfig(), nil
		default:
			return store.PutConfig(*cfg.Value), nil
		}
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "clientConfigService.SetClientConfig").Str("name", cfg.Name).Msg("failed to write client config")
		return toAppError(err)
	}
	return nil
}

func clientConfigKey(name string) models.ConfigKey {
	return models.ConfigKey{Name: models.ConfigNameClient, ID: name}
}
