// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// AttachmentSortSpec is the sort vocabulary of the attachment list.
var AttachmentSortSpec = NewSortSpec(
	map[string]string{
		"name":         "name",
		"created":      "created_at",
		"lastUpdated":  "updated_at",
		"last_updated": "updated_at",
	},
	models.SortClause{Field: "created", Order: models.SortDESC},
	models.SortClause{Field: "lastUpdated", Order: models.SortDESC},
)

// attachmentRepository is the SQLite implementation of [AttachmentRepository].
type attachmentRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAttachmentRepository constructs an [AttachmentRepository] on db.
func NewAttachmentRepository(db *DB, logger *logger.Logger) AttachmentRepository {
	logger.Debug().Msg("creating attachment repository")
	return &attachmentRepository{
		db:     db,
		logger: logger,
	}
}

// SaveAttachment implements [AttachmentRepository]. The content lookup and
// the insert share one transaction, so concurrent uploads of the same file
// end up with one row. A duplicate upload refreshes updated_at of the
// existing row.
func (r *attachmentRepository) SaveAttachment(ctx context.Context, attachment models.Attachment) (string, error) {
	log := logger.FromContext(ctx)

	var id string
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		existing, err := findAttachmentByContent(ctx, tx, attachment.DataHash, attachment.Data)
		if err != nil {
			return err
		}

		if existing != "" {
			if _, err = tx.ExecContext(ctx, touchAttachment, formatTimestamp(attachment.UpdatedAt), existing); err != nil {
				log.Err(err).Str("func", "attachmentRepository.SaveAttachment").Msg("failed to refresh existing attachment")
				return r.db.classify(ErrExecutingStatement, err)
			}
			log.Debug().Str("func", "attachmentRepository.SaveAttachment").Str("id", existing).Msg("content already stored")
			id = existing
			return nil
		}

		_, err = tx.ExecContext(ctx, insertAttachment,
			attachment.ID,
			attachment.MimeType,
			attachment.Name,
			formatTimestamp(attachment.CreatedAt),
			formatTimestamp(attachment.UpdatedAt),
			attachment.DataHash,
			attachment.Data,
		)
		if err != nil {
			log.Err(err).Str("func", "attachmentRepository.SaveAttachment").Msg("failed to insert attachment")
			return r.db.classify(ErrExecutingStatement, err)
		}

		id = attachment.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

func findAttachmentByContent(ctx context.Context, exec Executor, hash, data []byte) (string, error) {
	rows, err := exec.QueryContext(ctx, findAttachmentsByHash, hash)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     string
			stored []byte
		)
		if err = rows.Scan(&id, &stored); err != nil {
			return "", fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		// guard against hash collisions
		if bytes.Equal(stored, data) {
			return id, nil
		}
	}
	if err = rows.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return "", nil
}

// GetAttachmentContent implements [AttachmentRepository].
func (r *attachmentRepository) GetAttachmentContent(ctx context.Context, id string) (models.AttachmentContent, error) {
	log := logger.FromContext(ctx)

	var content models.AttachmentContent
	err := r.db.QueryRowContext(ctx, selectAttachmentContent, id).Scan(&content.MimeType, &content.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AttachmentContent{}, ErrAttachmentNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "attachmentRepository.GetAttachmentContent").Str("id", id).Msg("failed to load attachment")
		return models.AttachmentContent{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return content, nil
}

// ListAttachments implements [AttachmentRepository].
func (r *attachmentRepository) ListAttachments(ctx context.Context, req models.AttachmentListRequest) (models.PaginatedResponse[models.Attachment], error) {
	var resp models.PaginatedResponse[models.Attachment]

	q, err := NewListQuery(attachmentListBase(req), AttachmentSortSpec, req.ListRequest)
	if err != nil {
		return resp, err
	}

	err = r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		resp.Data, err = List(ctx, tx, q, scanAttachment, &resp.Total)
		return err
	})
	if err != nil {
		return models.PaginatedResponse[models.Attachment]{}, err
	}

	return resp, nil
}

// attachmentListBase selects attachments matching req. Column order matches
// [scanAttachment].
func attachmentListBase(req models.AttachmentListRequest) sq.SelectBuilder {
	columns := []string{"a.id", "a.mime_type", "a.name", "a.created_at", "a.updated_at"}
	if req.WithData {
		columns = append(columns, "a.data_hash", "a.data")
	} else {
		columns = append(columns, "NULL AS data_hash", "NULL AS data")
	}

	base := sq.Select(columns...).From("attachments a")

	if q := req.Query(); q != "" {
		base = base.Where("a.name LIKE ?", "%"+q+"%")
	}
	if req.From != nil {
		base = base.Where("substr(a.created_at, 1, 10) >= ?", req.From.String())
	}
	if req.To != nil {
		base = base.Where("substr(a.created_at, 1, 10) <= ?", req.To.String())
	}
	if req.Includes != nil {
		base = base.Where(sq.Eq{"a.id": req.Includes})
	}
	if accounts := normalizeAccounts(req.Accounts); len(accounts) > 0 {
		referenced := sq.Select("ta.attachment_id").
			From("transaction_attachments ta").
			Join("transactions t ON t.id = ta.transaction_id").
			Where(sq.Or{
				sq.Eq{"lower(trim(t.from_account))": accounts},
				sq.Eq{"lower(trim(t.to_account))": accounts},
			})
		base = base.Where(sq.Expr("a.id IN (?)", referenced))
	}

	return base
}

func scanAttachment(rows *sql.Rows) (models.Attachment, error) {
	var (
		a                  models.Attachment
		created, updated   string
		dataHash, dataBlob []byte
	)
	if err := rows.Scan(&a.ID, &a.MimeType, &a.Name, &created, &updated, &dataHash, &dataBlob); err != nil {
		return models.Attachment{}, err
	}

	var err error
	if a.CreatedAt, err = parseTimestamp(created); err != nil {
		return models.Attachment{}, err
	}
	if a.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return models.Attachment{}, err
	}
	a.DataHash = dataHash
	a.Data = dataBlob

	return a, nil
}

// DeleteUnreferencedAttachments implements [AttachmentRepository].
func (r *attachmentRepository) DeleteUnreferencedAttachments(ctx context.Context, olderThan time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteUnreferencedAttachments, formatTimestamp(olderThan))
	if err != nil {
		log.Err(err).Str("func", "attachmentRepository.DeleteUnreferencedAttachments").Msg("failed to delete attachments")
		return 0, r.db.classify(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().Str("func", "attachmentRepository.DeleteUnreferencedAttachments").Int64("deleted", n).Msg("removed unreferenced attachments")
	return n, nil
}

func normalizeAccounts(accounts []string) []string {
	normalized := make([]string, 0, len(accounts))
	for _, account := range accounts {
		if account = strings.ToLower(strings.TrimSpace(account)); account != "" {
			normalized = append(normalized, account)
		}
	}
	return normalized
}
