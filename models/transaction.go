// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Transaction is a single ledger entry moving Amount from one account to another.
// Amount is in minor currency units.
type Transaction struct {
	ID          string    `json:"id" validate:"required"`
	Description string    `json:"description"`
	FromAccount string    `json:"from_account"`
	ToAccount   string    `json:"to_account"`
	Amount      int64     `json:"amount"`
	TransDate   Date      `json:"trans_date"`
	UpdatedAt   time.Time `json:"updated_date"`

	// Attachments lists the ids of linked attachments.
	Attachments []string `json:"attachments"`

	// Tags are compared case-insensitively.
	Tags []string `json:"tags"`
}

// TransactionListRequest filters the transaction list.
type TransactionListRequest struct {
	ListRequest

	Includes []string `json:"includes,omitempty"`
	Accounts []string `json:"accounts,omitempty"`
	Tag      *string  `json:"tag,omitempty"`
}

// NewTransactionListRequest returns a request with default paging.
func NewTransactionListRequest() TransactionListRequest {
	return TransactionListRequest{ListRequest: DefaultListRequest()}
}

// TransactionListResponse adds the amount sum over the whole filter.
type TransactionListResponse struct {
	PaginatedResponse[Transaction]
	Sum int64 `json:"sum"`
}

// DeletedResponse reports how many rows a delete removed.
type DeletedResponse struct {
	NumDeleted int64 `json:"num_deleted"`
}
