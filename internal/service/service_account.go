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

type accountService struct {
	accountRepository store.AccountRepository
	validator         validators.Validator

	logger *logger.Logger
}

func NewAccountService(accountRepository store.AccountRepository, validator validators.Validator, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		validator:         validator,
		logger:            logger,
	}
}

func (a *accountService) ListAccounts(ctx context.Context, req models.AccountListRequest) (models.AccountListResponse, error) {
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AccountListResponse{}, toAppError(err)
	}

	resp, err := a.accountRepository.ListAccounts(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.ListAccounts").Msg("failed to list accounts")
		return models.AccountListResponse{}, toAppError(err)
	}
	return resp, nil
}

func (a *accountService) ListAccountGroups(ctx context.Context) ([]models.AccountGroup, error) {
	groups, err := a.accountRepository.ListAccountGroups(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.ListAccountGroups").Msg("failed to list account groups")
		return nil, toAppError(err)
	}
	return groups, nil
}

// SaveAccountGroups replaces the members of every group in groups.
func (a *accountService) SaveAccountGroups(ctx context.Context, groups []models.AccountGroup) (models.AffectedResponse, error) {
	if err := a.validator.Validate(ctx, groups); err != nil {
		return models.AffectedResponse{}, toAppError(err)
	}
	for _, g := range groups {
		if strings.TrimSpace(g.GroupName) == "" {
			return models.AffectedResponse{}, errEmptyGroupName
		}
	}

	n, err := a.accountRepository.ReplaceAccountGroups(ctx, groups)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.SaveAccountGroups").Msg("failed to save account groups")
		return models.AffectedResponse{}, toAppError(err)
	}
	return models.AffectedResponse{NumAffected: n}, nil
}

func (a *accountService) DeleteAccountGroups(ctx context.Context, names []string) (models.DeletedResponse, error) {
	n, err := a.accountRepository.DeleteAccountGroups(ctx, names)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.DeleteAccountGroups").Msg("failed to delete account groups")
		return models.DeletedResponse{}, toAppError(err)
	}
	return models.DeletedResponse{NumDeleted: n}, nil
}
