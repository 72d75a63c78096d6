// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/internal/validators"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

type tagService struct {
	tagRepository store.TagRepository
	validator     validators.Validator

	logger *logger.Logger
}

func NewTagService(tagRepository store.TagRepository, validator validators.Validator, logger *logger.Logger) TagService {
	return &tagService{
		tagRepository: tagRepository,
		validator:     validator,
		logger:        logger,
	}
}

func (t *tagService) ListTags(ctx context.Context, req models.TagListRequest) (models.PaginatedResponse[models.TagSummary], error) {
	if err := t.validator.Validate(ctx, req); err != nil {
		return models.PaginatedResponse[models.TagSummary]{}, toAppError(err)
	}

	resp, err := t.tagRepository.ListTags(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tagService.ListTags").Msg("failed to list tags")
		return models.PaginatedResponse[models.TagSummary]{}, toAppError(err)
	}
	return resp, nil
}
