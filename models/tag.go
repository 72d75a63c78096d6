// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TagSummary aggregates the transactions carrying one tag.
type TagSummary struct {
	Tag         string    `json:"tag"`
	NumTx       int64     `json:"num_tx"`
	Total       int64     `json:"total"`
	LastUpdated time.Time `json:"last_updated"`
}

// TagListRequest filters the tag list. Q matches the tag name.
type TagListRequest struct {
	ListRequest
}

// NewTagListRequest returns a request with default paging.
func NewTagListRequest() TagListRequest {
	return TagListRequest{ListRequest: DefaultListRequest()}
}
