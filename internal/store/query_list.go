// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// countAggregate is the projection used when a list needs only the total.
const countAggregate = "COUNT(*)"

// ListQuery is a list endpoint call compiled down to SQL: an arbitrary base
// SELECT with its filters already applied, plus sorting and paging.
//
// The base is wrapped as a CTE twice, once for the page and once for the
// aggregates, so the totals always describe exactly the filtered set:
//
//	WITH cte AS (<base>) SELECT * FROM cte ORDER BY ... LIMIT ...
//	WITH cte AS (<base>) SELECT <aggregate> FROM cte
type ListQuery struct {
	BaseSQL  string
	BaseArgs []any

	Sort  SortSpec
	Sorts []models.SortClause

	Limit  *int64
	Offset *int64

	// Aggregate is the projection of the aggregate query. Empty means COUNT(*).
	Aggregate string
}

// NewListQuery compiles base and applies the sorting and paging of req.
func NewListQuery(base sq.SelectBuilder, spec SortSpec, req models.ListRequest) (ListQuery, error) {
	baseSQL, args, err := base.PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return ListQuery{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	q := ListQuery{
		BaseSQL:  baseSQL,
		BaseArgs: args,
		Sort:     spec,
		Sorts:    req.Sorts,
	}

	if req.Limit >= 0 {
		limit := req.Limit
		q.Limit = &limit
	}
	if req.Offset > 0 {
		offset := req.Offset
		q.Offset = &offset
	}

	return q, nil
}

// ListSQL returns the page query.
func (q ListQuery) ListSQL(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("WITH cte AS (")
	b.WriteString(q.BaseSQL)
	b.WriteString(") SELECT * FROM cte")

	if orderBy := q.Sort.OrderBy(ctx, q.Sorts); orderBy != "" {
		b.WriteString(" ")
		b.WriteString(orderBy)
	}
	if limit := LimitClause(q.Limit, q.Offset); limit != "" {
		b.WriteString(" ")
		b.WriteString(limit)
	}

	return b.String()
}

// AggregateSQL returns the aggregate query over the unpaged base.
func (q ListQuery) AggregateSQL() string {
	aggregate := q.Aggregate
	if aggregate == "" {
		aggregate = countAggregate
	}
	return "WITH cte AS (" + q.BaseSQL + ") SELECT " + aggregate + " FROM cte"
}

// RowScanner reads one row of a list query.
type RowScanner[T any] func(rows *sql.Rows) (T, error)

// List runs the page and aggregate queries of q on exec and returns the
// page. The aggregate row is scanned into aggregates, which must match the
// Aggregate projection.
//
// Pass a transaction as exec when both queries must observe the same
// snapshot; [DB.InReadTx] is the usual way to get one.
func List[T any](ctx context.Context, exec Executor, q ListQuery, scan RowScanner[T], aggregates ...any) ([]T, error) {
	log := logger.FromContext(ctx)

	listSQL := q.ListSQL(ctx)
	log.Debug().Str("func", "store.List").Str("sql", listSQL).Msg("running list query")

	rows, err := exec.QueryContext(ctx, listSQL, q.BaseArgs...)
	if err != nil {
		log.Err(err).Str("func", "store.List").Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	data := make([]T, 0)
	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "store.List").Msg("failed to scan list row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		data = append(data, item)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "store.List").Msg("error iterating list rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	rows.Close()

	if len(aggregates) == 0 {
		return data, nil
	}

	if err = exec.QueryRowContext(ctx, q.AggregateSQL(), q.BaseArgs...).Scan(aggregates...); err != nil {
		log.Err(err).Str("func", "store.List").Msg("failed to scan aggregate row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return data, nil
}
