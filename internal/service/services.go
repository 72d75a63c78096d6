// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/crypto"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/internal/thumbnail"
	"github.com/MKhiriev/go-ledger-keeper/internal/utils"
	"github.com/MKhiriev/go-ledger-keeper/internal/validators"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

type Services struct {
	AuthService         AuthService
	AttachmentService   AttachmentService
	TransactionService  TransactionService
	TagService          TagService
	AccountService      AccountService
	ChartConfigService  ChartConfigService
	ClientConfigService ClientConfigService
	AppInfoService      AppInfoService
}

// Dependencies are the collaborators shared by the services. Zero fields
// get production defaults.
type Dependencies struct {
	KeyChain    crypto.KeyChain
	TokenCodec  *crypto.TokenCodec
	Thumbnailer thumbnail.Thumbnailer
	IDGenerator utils.IDGenerator
	Validator   validators.Validator
	BuildInfo   models.AppBuildInfo
}

func (d Dependencies) withDefaults() Dependencies {
	if d.KeyChain == nil {
		d.KeyChain = crypto.NewKeyChain()
	}
	if d.TokenCodec == nil {
		d.TokenCodec = crypto.NewTokenCodec()
	}
	if d.Thumbnailer == nil {
		d.Thumbnailer = thumbnail.NewScaler()
	}
	if d.IDGenerator == nil {
		d.IDGenerator = utils.NewUUIDGenerator()
	}
	if d.Validator == nil {
		d.Validator = validators.NewRequestValidator()
	}
	return d
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, deps Dependencies, logger *logger.Logger) (*Services, error) {
	if storages == nil {
		return nil, ErrNoStorages
	}
	deps = deps.withDefaults()

	appInfoService, err := NewAppInfoService(cfg.App, deps.BuildInfo, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(storages.ConfigRepository, deps.KeyChain, deps.TokenCodec, cfg.App, logger)
	signer := crypto.NewAssetSigner(deps.TokenCodec, cfg.App.AssetTokenDuration)

	return &Services{
		AuthService: authService,
		AttachmentService: NewAttachmentService(
			storages.AttachmentRepository,
			authService,
			signer,
			deps.Thumbnailer,
			deps.IDGenerator,
			deps.Validator,
			cfg.App,
			logger,
		),
		TransactionService: NewTransactionValidationService(deps.Validator).
			Wrap(NewTransactionService(storages.TransactionRepository, logger)),
		TagService:          NewTagService(storages.TagRepository, deps.Validator, logger),
		AccountService:      NewAccountService(storages.AccountRepository, deps.Validator, logger),
		ChartConfigService:  NewChartConfigService(storages.ConfigRepository, deps.Validator, logger),
		ClientConfigService: NewClientConfigService(storages.ConfigRepository, deps.Validator, logger),
		AppInfoService:      appInfoService,
	}, nil
}
