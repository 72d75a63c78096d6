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

type chartConfigService struct {
	configRepository store.ConfigRepository
	validator        validators.Validator

	logger *logger.Logger
}

func NewChartConfigService(configRepository store.ConfigRepository, validator validators.Validator, logger *logger.Logger) ChartConfigService {
	return &chartConfigService{
		configRepository: configRepository,
		validator:        validator,
		logger:           logger,
	}
}

// GetChartConfig returns an empty Config for a chart that was never saved.
func (c *chartConfigService) GetChartConfig(ctx context.Context, name string) (models.ChartConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ChartConfig{}, errEmptyConfigName
	}

	value, _, err := c.configRepository.Get(ctx, chartConfigKey(name))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "chartConfigService.GetChartConfig").Str("name", name).Msg("failed to read chart config")
		return models.ChartConfig{}, toAppError(err)
	}
	return models.ChartConfig{Name: name, Config: value}, nil
}

// SaveChartConfig stores cfg and returns it with the name trimmed.
func (c *chartConfigService) SaveChartConfig(ctx context.Context, cfg models.ChartConfig) (models.ChartConfig, error) {
	if err := c.validator.Validate(ctx, cfg); err != nil {
		return models.ChartConfig{}, toAppError(err)
	}
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return models.ChartConfig{}, errEmptyConfigName
	}

	err := c.configRepository.Update(ctx, chartConfigKey(cfg.Name), func(current *string) (store.ConfigWrite, error) {
		if current != nil && *current == cfg.Config {
			return store.KeepConfig(), nil
		}
		return store.PutConfig(cfg.Config), nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "chartConfigService.SaveChartConfig").Str("name", cfg.Name).Msg("failed to write chart config")
		return models.ChartConfig{}, toAppError(err)
	}
	return cfg, nil
}

func chartConfigKey(name string) models.ConfigKey {
	return models.ConfigKey{Name: models.ConfigNameChart, ID: name}
}
