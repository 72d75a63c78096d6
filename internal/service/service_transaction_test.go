// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-keeper/internal/apperr"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/mock"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/internal/validators"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

func newTestTransactionSvc(t *testing.T) (TransactionService, *mock.MockTransactionRepository) {
	t.Helper()

	repo := mock.NewMockTransactionRepository(gomock.NewController(t))
	inner := NewTransactionService(repo, logger.Nop()).(*transactionService)
	inner.now = fixedClock(testNow.In(time.FixedZone("UTC+3", 3*60*60)))

	return NewTransactionValidationService(validators.NewRequestValidator()).Wrap(inner), repo
}

func TestTransactionService_SaveTransactions_StampsUpdateTime(t *testing.T) {
	svc, repo := newTestTransactionSvc(t)
	day := models.NewDate(testNow)

	input := []models.Transaction{
		{ID: "t-1", Amount: 100, TransDate: day, UpdatedAt: time.Unix(0, 0)},
		{ID: "t-2", Amount: 200, TransDate: day},
	}

	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []models.Transaction) (int64, error) {
			for _, tx := range txs {
				assert.Equal(t, testNow, tx.UpdatedAt)
				assert.Equal(t, time.UTC, tx.UpdatedAt.Location())
			}
			return int64(len(txs)), nil
		})

	resp, err := svc.SaveTransactions(context.Background(), input)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.NumAffected)
	assert.Equal(t, time.Unix(0, 0), input[0].UpdatedAt, "caller's slice must not be modified")
}

func TestTransactionService_SaveTransactions_RejectsMissingID(t *testing.T) {
	svc, _ := newTestTransactionSvc(t)

	_, err := svc.SaveTransactions(context.Background(), []models.Transaction{{ID: "t-1"}, {ID: ""}})
	requireKind(t, err, apperr.KindInvalidArgument)
}

func TestTransactionService_DeleteTransactions(t *testing.T) {
	svc, repo := newTestTransactionSvc(t)
	repo.EXPECT().DeleteTransactions(gomock.Any(), []string{"t-1", "t-2"}).Return(int64(1), nil)

	resp, err := svc.DeleteTransactions(context.Background(), []string{"t-1", "t-2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.NumDeleted)
}

func TestTransactionService_DeleteTransactions_StorageError(t *testing.T) {
	svc, repo := newTestTransactionSvc(t)
	repo.EXPECT().DeleteTransactions(gomock.Any(), gomock.Any()).Return(int64(0), store.ErrCommitingTransaction)

	_, err := svc.DeleteTransactions(context.Background(), []string{"t-1"})
	requireKind(t, err, apperr.KindStorage)
	assert.ErrorIs(t, err, store.ErrCommitingTransaction)
}

func TestTransactionService_ListTransactions(t *testing.T) {
	svc, repo := newTestTransactionSvc(t)

	req := models.NewTransactionListRequest()
	want := models.TransactionListResponse{
		PaginatedResponse: models.PaginatedResponse[models.Transaction]{
			Data:  []models.Transaction{{ID: "t-1", Amount: 5}},
			Total: 1,
		},
		Sum: 5,
	}
	repo.EXPECT().ListTransactions(gomock.Any(), req).Return(want, nil)

	got, err := svc.ListTransactions(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTransactionService_ListTransactions_InvalidRequests(t *testing.T) {
	from, _ := models.ParseDate("2024-02-01")
	to, _ := models.ParseDate("2024-01-01")

	tests := []struct {
		name   string
		modify func(*models.TransactionListRequest)
	}{
		{name: "negative offset", modify: func(r *models.TransactionListRequest) { r.Offset = -5 }},
		{name: "limit below -1", modify: func(r *models.TransactionListRequest) { r.Limit = -2 }},
		{name: "reversed range", modify: func(r *models.TransactionListRequest) { r.From, r.To = &from, &to }},
		{name: "bad sort order", modify: func(r *models.TransactionListRequest) {
			r.Sorts = []models.SortClause{{Field: "amount", Order: "sideways"}}
		}},
		{name: "empty sort field", modify: func(r *models.TransactionListRequest) {
			r.Sorts = []models.SortClause{{Order: models.SortASC}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestTransactionSvc(t)

			req := models.NewTransactionListRequest()
			tt.modify(&req)

			_, err := svc.ListTransactions(context.Background(), req)
			requireKind(t, err, apperr.KindInvalidArgument)
		})
	}
}

func TestTransactionService_ListTransactions_UnboundedLimitIsValid(t *testing.T) {
	svc, repo := newTestTransactionSvc(t)

	req := models.NewTransactionListRequest()
	req.Limit = -1
	repo.EXPECT().ListTransactions(gomock.Any(), req).Return(models.TransactionListResponse{}, nil)

	_, err := svc.ListTransactions(context.Background(), req)
	require.NoError(t, err)
}
