// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// TagSortSpec is the sort vocabulary of the tag list.
var TagSortSpec = NewSortSpec(
	map[string]string{
		"tag":          "tag",
		"numTx":        "num_tx",
		"num_tx":       "num_tx",
		"total":        "total",
		"lastUpdated":  "last_updated",
		"last_updated": "last_updated",
	},
	models.SortClause{Field: "tag", Order: models.SortASC},
	models.SortClause{Field: "numTx", Order: models.SortDESC},
)

type tagRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTagRepository constructs a [TagRepository] on db.
func NewTagRepository(db *DB, logger *logger.Logger) TagRepository {
	logger.Debug().Msg("creating tag repository")
	return &tagRepository{
		db:     db,
		logger: logger,
	}
}

func (r *tagRepository) ListTags(ctx context.Context, req models.TagListRequest) (models.PaginatedResponse[models.TagSummary], error) {
	var resp models.PaginatedResponse[models.TagSummary]

	q, err := NewListQuery(tagListBase(req), TagSortSpec, req.ListRequest)
	if err != nil {
		return resp, err
	}

	err = r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		resp.Data, err = List(ctx, tx, q, scanTagSummary, &resp.Total)
		return err
	})
	if err != nil {
		return models.PaginatedResponse[models.TagSummary]{}, err
	}

	return resp, nil
}

func tagListBase(req models.TagListRequest) sq.SelectBuilder {
	base := sq.Select(
		"tt.tag AS tag",
		"COUNT(*) AS num_tx",
		"COALESCE(SUM(t.amount), 0) AS total",
		"MAX(t.updated_at) AS last_updated",
	).
		From("transaction_tags tt").
		Join("transactions t ON t.id = tt.transaction_id")

	if q := req.Query(); q != "" {
		base = base.Where("tt.tag LIKE ?", "%"+q+"%")
	}
	if req.From != nil {
		base = base.Where("t.trans_date >= ?", req.From.String())
	}
	if req.To != nil {
		base = base.Where("t.trans_date <= ?", req.To.String())
	}

	return base.GroupBy("tt.tag")
}

func scanTagSummary(rows *sql.Rows) (models.TagSummary, error) {
	var (
		s       models.TagSummary
		updated string
	)
	if err := rows.Scan(&s.Tag, &s.NumTx, &s.Total, &updated); err != nil {
		return models.TagSummary{}, err
	}

	var err error
	if s.LastUpdated, err = parseTimestamp(updated); err != nil {
		return models.TagSummary{}, err
	}
	return s, nil
}
