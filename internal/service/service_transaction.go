// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

type transactionService struct {
	transactionRepository store.TransactionRepository
	now                   func() time.Time

	logger *logger.Logger
}

func NewTransactionService(transactionRepository store.TransactionRepository, logger *logger.Logger) TransactionService {
	return &transactionService{
		transactionRepository: transactionRepository,
		now:                   time.Now,
		logger:                logger,
	}
}

// SaveTransactions stamps every entry with the save time and upserts the
// batch atomically.
func (t *transactionService) SaveTransactions(ctx context.Context, transactions []models.Transaction) (models.AffectedResponse, error) {
	now := t.now().UTC()
	stamped := make([]models.Transaction, len(transactions))
	for i, tx := range transactions {
		tx.UpdatedAt = now
		stamped[i] = tx
	}

	n, err := t.transactionRepository.SaveTransactions(ctx, stamped)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "transactionService.SaveTransactions").Msg("failed to save transactions")
		return models.AffectedResponse{}, toAppError(err)
	}
	return models.AffectedResponse{NumAffected: n}, nil
}

func (t *transactionService) DeleteTransactions(ctx context.Context, ids []string) (models.DeletedResponse, error) {
	n, err := t.transactionRepository.DeleteTransactions(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "transactionService.DeleteTransactions").Msg("failed to delete transactions")
		return models.DeletedResponse{}, toAppError(err)
	}
	return models.DeletedResponse{NumDeleted: n}, nil
}

func (t *transactionService) ListTransactions(ctx context.Context, req models.TransactionListRequest) (models.TransactionListResponse, error) {
	resp, err := t.transactionRepository.ListTransactions(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "transactionService.ListTransactions").Msg("failed to list transactions")
		return models.TransactionListResponse{}, toAppError(err)
	}
	return resp, nil
}
