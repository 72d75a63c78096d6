// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// SortSpec maps the sort vocabulary of one list endpoint to storage columns.
// Column names never come from the client: a field without a mapping is
// dropped, which also keeps ORDER BY free of injected SQL.
type SortSpec struct {
	columns  map[string]string
	defaults []models.SortClause
}

// NewSortSpec declares the fields an endpoint sorts by and the clauses used
// when a request names none.
func NewSortSpec(columns map[string]string, defaults ...models.SortClause) SortSpec {
	return SortSpec{columns: columns, defaults: defaults}
}

// Column returns the storage column for field.
func (s SortSpec) Column(field string) (string, bool) {
	column, ok := s.columns[field]
	return column, ok
}

// Defaults returns the clauses applied to requests without sorts.
func (s SortSpec) Defaults() []models.SortClause {
	return s.defaults
}

// OrderBy renders "ORDER BY c1 ASC, c2 DESC" for requested. Unmapped
// fields are skipped silently. When two fields map to the same column the
// first one wins. If no requested clause survives, the defaults apply, so
// a request sorted only by unknown fields pages like one without sorts.
// An empty string is returned when nothing remains.
func (s SortSpec) OrderBy(ctx context.Context, requested []models.SortClause) string {
	parts := s.columnsFor(ctx, requested)
	if len(parts) == 0 {
		parts = s.columnsFor(ctx, s.defaults)
	}

	if len(parts) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

func (s SortSpec) columnsFor(ctx context.Context, clauses []models.SortClause) []string {
	seen := make(map[string]struct{}, len(clauses))
	parts := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		column, ok := s.Column(clause.Field)
		if !ok {
			continue
		}
		if _, dup := seen[column]; dup {
			logger.FromContext(ctx).Debug().
				Str("func", "SortSpec.OrderBy").
				Str("field", clause.Field).
				Str("column", column).
				Msg("skipping duplicate sort column")
			continue
		}
		seen[column] = struct{}{}
		parts = append(parts, column+" "+string(clause.Order.Normalize()))
	}
	return parts
}

// LimitClause renders the paging clause:
//   - limit and offset: "LIMIT off, lim"
//   - limit only:       "LIMIT lim"
//   - offset only:      "LIMIT off, -1" (no upper bound)
//   - neither:          ""
//
// A negative limit counts as absent.
func LimitClause(limit, offset *int64) string {
	hasLimit := limit != nil && *limit >= 0
	hasOffset := offset != nil && *offset > 0

	switch {
	case hasLimit && hasOffset:
		return "LIMIT " + strconv.FormatInt(*offset, 10) + ", " + strconv.FormatInt(*limit, 10)
	case hasLimit:
		return "LIMIT " + strconv.FormatInt(*limit, 10)
	case hasOffset:
		return "LIMIT " + strconv.FormatInt(*offset, 10) + ", -1"
	default:
		return ""
	}
}
