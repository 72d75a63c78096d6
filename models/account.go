// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Account is derived from the transactions naming it. Balance is what
// flowed in minus what flowed out, in minor currency units.
type Account struct {
	Name          string `json:"name"`
	Balance       int64  `json:"balance"`
	LastTransDate Date   `json:"last_trans_date"`
}

// AccountListRequest filters the account list. Q matches the account name,
// From and To bound the transactions counted into the balance.
type AccountListRequest struct {
	ListRequest

	// Includes restricts the list to these account names.
	Includes []string `json:"includes,omitempty"`

	// Group restricts the list to the members of one account group.
	Group *string `json:"group,omitempty"`
}

// NewAccountListRequest returns a request with default paging.
func NewAccountListRequest() AccountListRequest {
	return AccountListRequest{ListRequest: DefaultListRequest()}
}

// AccountListResponse adds the balance sum over the whole filter.
type AccountListResponse struct {
	PaginatedResponse[Account]
	Balance int64 `json:"balance"`
}

// AccountGroup is a named set of accounts. Names compare case-insensitively.
type AccountGroup struct {
	GroupName string   `json:"group_name" validate:"required,max=256"`
	Accounts  []string `json:"accounts" validate:"dive,required,max=256"`
}
