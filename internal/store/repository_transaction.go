// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// TransactionSortSpec is the sort vocabulary of the transaction list.
var TransactionSortSpec = NewSortSpec(
	map[string]string{
		"fromAccount":  "from_account",
		"from_account": "from_account",
		"toAccount":    "to_account",
		"to_account":   "to_account",
		"created":      "trans_date",
		"updated":      "updated_at",
		"amount":       "amount",
		"description":  "description",
	},
	models.SortClause{Field: "created", Order: models.SortDESC},
	models.SortClause{Field: "updated", Order: models.SortDESC},
)

// transactionRepository is the SQLite implementation of [TransactionRepository].
type transactionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTransactionRepository constructs a [TransactionRepository] on db.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	logger.Debug().Msg("creating transaction repository")
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

// SaveTransactions upserts every transaction and replaces its tag and
// attachment links. The batch is applied in one transaction: either every
// entry is saved or none is.
func (r *transactionRepository) SaveTransactions(ctx context.Context, transactions []models.Transaction) (int64, error) {
	log := logger.FromContext(ctx)

	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		for idx, t := range transactions {
			if err := r.saveTransaction(ctx, tx, t); err != nil {
				log.Err(err).
					Str("func", "transactionRepository.SaveTransactions").
					Int("iteration", idx+1).
					Str("id", t.ID).
					Msg("failed to save transaction")
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("func", "transactionRepository.SaveTransactions").
		Int("entries_count", len(transactions)).
		Msg("saved transactions")
	return int64(len(transactions)), nil
}

func (r *transactionRepository) saveTransaction(ctx context.Context, tx *sql.Tx, t models.Transaction) error {
	_, err := tx.ExecContext(ctx, upsertTransaction,
		t.ID,
		t.Description,
		t.FromAccount,
		t.ToAccount,
		t.Amount,
		t.TransDate.String(),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return r.db.classify(ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, deleteTransactionAttachments, t.ID); err != nil {
		return r.db.classify(ErrExecutingStatement, err)
	}
	for _, attachmentID := range t.Attachments {
		if _, err = tx.ExecContext(ctx, insertTransactionAttachment, t.ID, attachmentID); err != nil {
			return r.db.classify(ErrExecutingStatement, err)
		}
	}

	if _, err = tx.ExecContext(ctx, deleteTransactionTags, t.ID); err != nil {
		return r.db.classify(ErrExecutingStatement, err)
	}
	for _, tag := range t.Tags {
		if tag = strings.TrimSpace(tag); tag == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, insertTransactionTag, t.ID, tag); err != nil {
			return r.db.classify(ErrExecutingStatement, err)
		}
	}

	return nil
}

// DeleteTransactions removes the transactions with the given ids; their
// links go with them. Unknown ids are ignored.
func (r *transactionRepository) DeleteTransactions(ctx context.Context, ids []string) (int64, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sq.Delete("transactions").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "transactionRepository.DeleteTransactions").Msg("failed to delete transactions")
		return 0, r.db.classify(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n, nil
}

// ListTransactions returns one page of transactions with the count and the
// amount sum of the whole filtered set.
func (r *transactionRepository) ListTransactions(ctx context.Context, req models.TransactionListRequest) (models.TransactionListResponse, error) {
	var resp models.TransactionListResponse

	q, err := NewListQuery(transactionListBase(req), TransactionSortSpec, req.ListRequest)
	if err != nil {
		return resp, err
	}
	q.Aggregate = transactionAggregate

	err = r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		resp.Data, err = List(ctx, tx, q, scanTransaction, &resp.Total, &resp.Sum)
		return err
	})
	if err != nil {
		return models.TransactionListResponse{}, err
	}

	return resp, nil
}

// transactionListBase selects transactions matching req. Column order
// matches [scanTransaction].
func transactionListBase(req models.TransactionListRequest) sq.SelectBuilder {
	base := sq.Select(
		"t.id",
		"t.description",
		"t.from_account",
		"t.to_account",
		"t.amount",
		"t.trans_date",
		"t.updated_at",
		"(SELECT json_group_array(ta.attachment_id) FROM transaction_attachments ta WHERE ta.transaction_id = t.id) AS attachments",
		"(SELECT json_group_array(tt.tag) FROM transaction_tags tt WHERE tt.transaction_id = t.id) AS tags",
	).From("transactions t")

	if q := req.Query(); q != "" {
		base = base.Where("t.description LIKE ?", "%"+q+"%")
	}
	if req.From != nil {
		base = base.Where("t.trans_date >= ?", req.From.String())
	}
	if req.To != nil {
		base = base.Where("t.trans_date <= ?", req.To.String())
	}
	if req.Includes != nil {
		base = base.Where(sq.Eq{"t.id": req.Includes})
	}
	if accounts := normalizeAccounts(req.Accounts); len(accounts) > 0 {
		base = base.Where(sq.Or{
			sq.Eq{"lower(trim(t.from_account))": accounts},
			sq.Eq{"lower(trim(t.to_account))": accounts},
		})
	}
	if req.Tag != nil && strings.TrimSpace(*req.Tag) != "" {
		tagged := sq.Select("tg.transaction_id").
			From("transaction_tags tg").
			Where("tg.tag = ?", strings.TrimSpace(*req.Tag))
		base = base.Where(sq.Expr("t.id IN (?)", tagged))
	}

	return base
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var (
		t                 models.Transaction
		transDate         string
		updated           string
		attachments, tags string
	)
	if err := rows.Scan(&t.ID, &t.Description, &t.FromAccount, &t.ToAccount, &t.Amount, &transDate, &updated, &attachments, &tags); err != nil {
		return models.Transaction{}, err
	}

	var err error
	if t.TransDate, err = models.ParseDate(transDate); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrDecodingRow, err)
	}
	if t.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return models.Transaction{}, err
	}
	if err = json.Unmarshal([]byte(attachments), &t.Attachments); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: attachments: %w", ErrDecodingRow, err)
	}
	if err = json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: tags: %w", ErrDecodingRow, err)
	}

	return t, nil
}
