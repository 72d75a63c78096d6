// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"crypto/sha256"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

func newAttachment(id, name string, data []byte, at time.Time) models.Attachment {
	sum := sha256.Sum256(data)
	return models.Attachment{
		ID:        id,
		MimeType:  "text/plain; charset=utf-8",
		Name:      name,
		CreatedAt: at,
		UpdatedAt: at,
		DataHash:  sum[:],
		Data:      data,
	}
}

func TestAttachmentRepository_SaveDeduplicates(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)
	repo := NewAttachmentRepository(db, db.logger)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := repo.SaveAttachment(ctx, newAttachment("a-1", "receipt.txt", []byte("hello"), created))
	require.NoError(t, err)
	assert.Equal(t, "a-1", id)

	later := created.Add(time.Hour)
	id, err = repo.SaveAttachment(ctx, newAttachment("a-2", "copy.txt", []byte("hello"), later))
	require.NoError(t, err)
	assert.Equal(t, "a-1", id, "same bytes resolve to the stored row")

	id, err = repo.SaveAttachment(ctx, newAttachment("a-3", "other.txt", []byte("world"), later))
	require.NoError(t, err)
	assert.Equal(t, "a-3", id)

	list, err := repo.ListAttachments(ctx, models.NewAttachmentListRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)

	for _, a := range list.Data {
		if a.ID == "a-1" {
			assert.Equal(t, created, a.CreatedAt)
			assert.Equal(t, later, a.UpdatedAt, "duplicate upload refreshes updated_at")
		}
	}
}

func TestAttachmentRepository_SaveHashCollision(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)
	repo := NewAttachmentRepository(db, db.logger)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first := newAttachment("a-1", "one", []byte("one"), now)
	_, err := repo.SaveAttachment(ctx, first)
	require.NoError(t, err)

	// different content under the same hash is stored separately
	second := newAttachment("a-2", "two", []byte("two"), now)
	second.DataHash = first.DataHash
	id, err := repo.SaveAttachment(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "a-2", id)
}

func TestAttachmentRepository_GetContent(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)
	repo := NewAttachmentRepository(db, db.logger)

	_, err := repo.SaveAttachment(ctx, newAttachment("a-1", "receipt.txt", []byte("hello"), time.Now()))
	require.NoError(t, err)

	content, err := repo.GetAttachmentContent(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", content.MimeType)
	assert.Equal(t, []byte("hello"), content.Data)

	_, err = repo.GetAttachmentContent(ctx, "missing")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestAttachmentRepository_GetContentDriverError(t *testing.T) {
	db, mock := newTestMockDB(t)
	repo := NewAttachmentRepository(db, db.logger)

	mock.ExpectQuery("SELECT mime_type, data FROM attachments").
		WithArgs("a-1").
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.GetAttachmentContent(context.Background(), "a-1")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrAttachmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepository_SaveInsertFails(t *testing.T) {
	db, mock := newTestMockDB(t)
	repo := NewAttachmentRepository(db, db.logger)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, data FROM attachments").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data"}))
	mock.ExpectExec("INSERT INTO attachments").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.SaveAttachment(context.Background(), newAttachment("a-1", "x", []byte("x"), time.Now()))
	assert.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)
	attachments := NewAttachmentRepository(db, db.logger)
	transactions := NewTransactionRepository(db, db.logger)

	march := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	for _, a := range []models.Attachment{
		newAttachment("a-1", "march invoice.pdf", []byte("1"), march),
		newAttachment("a-2", "april receipt.png", []byte("2"), april),
		newAttachment("a-3", "april invoice.pdf", []byte("3"), april.Add(time.Hour)),
	} {
		_, err := attachments.SaveAttachment(ctx, a)
		require.NoError(t, err)
	}

	_, err := transactions.SaveTransactions(ctx, []models.Transaction{{
		ID:          "tx-1",
		FromAccount: " Checking ",
		ToAccount:   "Rent",
		Amount:      100,
		TransDate:   models.NewDate(april),
		UpdatedAt:   april,
		Attachments: []string{"a-2"},
	}})
	require.NoError(t, err)

	ids := func(resp models.PaginatedResponse[models.Attachment]) []string {
		out := make([]string, 0, len(resp.Data))
		for _, a := range resp.Data {
			out = append(out, a.ID)
		}
		return out
	}
	from := models.NewDate(april)
	to := models.NewDate(march)

	tests := []struct {
		name   string
		modify func(req *models.AttachmentListRequest)
		want   []string
	}{
		{
			name:   "default order is created desc",
			modify: func(*models.AttachmentListRequest) {},
			want:   []string{"a-3", "a-2", "a-1"},
		},
		{
			name: "query matches name",
			modify: func(req *models.AttachmentListRequest) {
				q := " invoice "
				req.Q = &q
				req.Sorts = []models.SortClause{{Field: "name", Order: models.SortASC}}
			},
			want: []string{"a-3", "a-1"},
		},
		{
			name:   "from",
			modify: func(req *models.AttachmentListRequest) { req.From = &from },
			want:   []string{"a-3", "a-2"},
		},
		{
			name:   "to",
			modify: func(req *models.AttachmentListRequest) { req.To = &to },
			want:   []string{"a-1"},
		},
		{
			name:   "includes",
			modify: func(req *models.AttachmentListRequest) { req.Includes = []string{"a-1", "a-3"} },
			want:   []string{"a-3", "a-1"},
		},
		{
			name:   "empty includes matches nothing",
			modify: func(req *models.AttachmentListRequest) { req.Includes = []string{} },
			want:   []string{},
		},
		{
			name:   "accounts ignore case and spaces",
			modify: func(req *models.AttachmentListRequest) { req.Accounts = []string{"CHECKING"} },
			want:   []string{"a-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.NewAttachmentListRequest()
			tt.modify(&req)

			resp, err := attachments.ListAttachments(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(resp))
			assert.Equal(t, int64(len(tt.want)), resp.Total)
		})
	}
}

func TestAttachmentRepository_ListWithData(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)
	repo := NewAttachmentRepository(db, db.logger)

	_, err := repo.SaveAttachment(ctx, newAttachment("a-1", "x", []byte("payload"), time.Now()))
	require.NoError(t, err)

	req := models.NewAttachmentListRequest()
	resp, err := repo.ListAttachments(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Nil(t, resp.Data[0].Data)

	req.WithData = true
	resp, err = repo.ListAttachments(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, []byte("payload"), resp.Data[0].Data)
	assert.Len(t, resp.Data[0].DataHash, sha256.Size)
}

func TestAttachmentRepository_DeleteUnreferenced(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)
	attachments := NewAttachmentRepository(db, db.logger)
	transactions := NewTransactionRepository(db, db.logger)

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, a := range []models.Attachment{
		newAttachment("old-orphan", "a", []byte("a"), old),
		newAttachment("old-linked", "b", []byte("b"), old),
		newAttachment("recent-orphan", "c", []byte("c"), recent),
	} {
		_, err := attachments.SaveAttachment(ctx, a)
		require.NoError(t, err)
	}
	_, err := transactions.SaveTransactions(ctx, []models.Transaction{{
		ID:          "tx-1",
		TransDate:   models.NewDate(old),
		UpdatedAt:   old,
		Attachments: []string{"old-linked"},
	}})
	require.NoError(t, err)

	n, err := attachments.DeleteUnreferencedAttachments(ctx, old.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = attachments.GetAttachmentContent(ctx, "old-orphan")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
	_, err = attachments.GetAttachmentContent(ctx, "old-linked")
	assert.NoError(t, err)
	_, err = attachments.GetAttachmentContent(ctx, "recent-orphan")
	assert.NoError(t, err)
}
