// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Attachment is an uploaded file, usually an invoice or receipt scan.
// Identical content is stored once; DataHash is the sha256 of Data.
type Attachment struct {
	ID        string    `json:"id"`
	MimeType  string    `json:"mime_type"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"last_updated"`
	DataHash  []byte    `json:"data_hash,omitempty"`
	Data      []byte    `json:"data,omitempty"`
}

// AttachmentUpload is a new attachment as received from the client.
type AttachmentUpload struct {
	Name     string
	MimeType string
	Data     []byte
}

// AttachmentRef is returned for every stored upload.
type AttachmentRef struct {
	ID string `json:"id"`
}

// AttachmentContent is the payload served by the download endpoint.
type AttachmentContent struct {
	MimeType string
	Data     []byte
}

// AttachmentListRequest filters the attachment list.
type AttachmentListRequest struct {
	ListRequest

	// Includes restricts the result to these ids.
	Includes []string `json:"includes,omitempty"`

	// Accounts restricts the result to attachments referenced by
	// transactions from or to one of these accounts.
	Accounts []string `json:"accounts,omitempty"`

	// WithData returns file contents with each row.
	WithData bool `json:"with_data,omitempty"`
}

// NewAttachmentListRequest returns a request with default paging.
func NewAttachmentListRequest() AttachmentListRequest {
	return AttachmentListRequest{ListRequest: DefaultListRequest()}
}

// AttachmentListItem is a row of the attachment list. SignedID is a
// short-lived asset token usable with the download endpoint.
type AttachmentListItem struct {
	Attachment Attachment `json:"attachment"`
	SignedID   string     `json:"signed_id"`
}

// CleanupRequest is the body of the attachment cleanup endpoint.
type CleanupRequest struct {
	KeepDays *int `json:"keep_days" validate:"omitempty,gte=0"`
}

// DefaultKeepDays is how long an unreferenced attachment survives cleanup.
const DefaultKeepDays = 7

// AffectedResponse reports how many rows a command touched.
type AffectedResponse struct {
	NumAffected int64 `json:"num_affected"`
}
