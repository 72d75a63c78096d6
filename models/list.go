// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultListLimit is the page size applied when a list request omits limit.
const DefaultListLimit int64 = 50

// DateLayout is the wire layout of calendar dates used by list filters.
const DateLayout = "2006-01-02"

// SortOrder is the direction of a single ORDER BY clause.
type SortOrder string

const (
	SortASC  SortOrder = "ASC"
	SortDESC SortOrder = "DESC"
)

// Normalize folds the order to upper case. Anything that is not DESC sorts ascending.
func (o SortOrder) Normalize() SortOrder {
	if strings.EqualFold(string(o), string(SortDESC)) {
		return SortDESC
	}
	return SortASC
}

// SortClause is one requested sort key. Field is an endpoint-level name,
// never a storage column.
type SortClause struct {
	Field string    `json:"field" validate:"required"`
	Order SortOrder `json:"order" validate:"omitempty,oneof=ASC DESC asc desc"`
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ListRequest carries the fields shared by every list endpoint.
// Endpoint-specific filters embed it.
type ListRequest struct {
	// Q is a free-text substring filter. Whitespace is trimmed before use.
	Q *string `json:"q,omitempty"`

	// From and To bound the entity date, both inclusive.
	From *Date `json:"from,omitempty"`
	To   *Date `json:"to,omitempty"`

	// Offset is the number of rows skipped before the page starts.
	Offset int64 `json:"offset" validate:"gte=0"`

	// Limit is the page size. -1 returns every row.
	Limit int64 `json:"limit" validate:"gte=-1"`

	// Sorts is applied in order. Unknown fields are ignored.
	Sorts []SortClause `json:"sorts,omitempty" validate:"omitempty,dive"`
}

// DefaultListRequest returns a request with the default page applied.
// Decoding JSON over it keeps the defaults for omitted fields.
func DefaultListRequest() ListRequest {
	return ListRequest{Limit: DefaultListLimit}
}

// Query returns the trimmed free-text filter, or "" if it is absent.
func (r ListRequest) Query() string {
	if r.Q == nil {
		return ""
	}
	return strings.TrimSpace(*r.Q)
}

// HasValidRange reports whether the date bounds are ordered.
func (r ListRequest) HasValidRange() bool {
	if r.From == nil || r.To == nil {
		return true
	}
	return !r.From.After(r.To.Time)
}

// PaginatedResponse is the result of a list endpoint. Total counts every
// row matching the filter, independent of paging.
type PaginatedResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}
