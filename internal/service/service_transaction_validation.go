// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-ledger-keeper/internal/validators"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// TransactionValidationService rejects malformed requests before they
// reach the wrapped service.
type TransactionValidationService struct {
	inner     TransactionService
	validator validators.Validator
}

func NewTransactionValidationService(validator validators.Validator) TransactionServiceWrapper {
	return &TransactionValidationService{
		validator: validator,
	}
}

func (v *TransactionValidationService) SaveTransactions(ctx context.Context, transactions []models.Transaction) (models.AffectedResponse, error) {
	if err := v.validator.Validate(ctx, transactions); err != nil {
		return models.AffectedResponse{}, toAppError(err)
	}
	return v.inner.SaveTransactions(ctx, transactions)
}

func (v *TransactionValidationService) DeleteTransactions(ctx context.Context, ids []string) (models.DeletedResponse, error) {
	return v.inner.DeleteTransactions(ctx, ids)
}

func (v *TransactionValidationService) ListTransactions(ctx context.Context, req models.TransactionListRequest) (models.TransactionListResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.TransactionListResponse{}, toAppError(err)
	}
	return v.inner.ListTransactions(ctx, req)
}

func (v *TransactionValidationService) Wrap(inner TransactionService) TransactionService {
	v.inner = inner
	return v
}
