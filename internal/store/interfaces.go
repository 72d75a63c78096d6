// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ConfigRepository is the key/value store backing credentials and client
// settings. Values are opaque strings, usually JSON.
type ConfigRepository interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key models.ConfigKey) (string, bool, error)

	// Update reads the value under key, passes it to updater and applies the
	// returned [ConfigWrite], all in one transaction. current is nil when no
	// value exists. An error from updater rolls back and is returned as is.
	Update(ctx context.Context, key models.ConfigKey, updater ConfigUpdater) error
}

// AttachmentRepository persists uploaded files.
type AttachmentRepository interface {
	// SaveAttachment stores attachment unless a row with identical content
	// exists, and returns the id of the row holding the content.
	SaveAttachment(ctx context.Context, attachment models.Attachment) (string, error)

	// GetAttachmentContent returns the MIME type and bytes of one attachment.
	GetAttachmentContent(ctx context.Context, id string) (models.AttachmentContent, error)

	// ListAttachments returns one page of attachments matching req.
	ListAttachments(ctx context.Context, req models.AttachmentListRequest) (models.PaginatedResponse[models.Attachment], error)

	// DeleteUnreferencedAttachments removes attachments no transaction links
	// to and that were last updated at or before olderThan.
	DeleteUnreferencedAttachments(ctx context.Context, olderThan time.Time) (int64, error)
}

// TransactionRepository persists ledger entries with their tags and
// attachment links.
type TransactionRepository interface {
	SaveTransactions(ctx context.Context, transactions []models.Transaction) (int64, error)
	DeleteTransactions(ctx context.Context, ids []string) (int64, error)
	ListTransactions(ctx context.Context, req models.TransactionListRequest) (models.TransactionListResponse, error)
}

// TagRepository aggregates transactions per tag.
type TagRepository interface {
	ListTags(ctx context.Context, req models.TagListRequest) (models.PaginatedResponse[models.TagSummary], error)
}

// AccountRepository derives accounts from transactions and stores the
// named account groups.
type AccountRepository interface {
	ListAccounts(ctx context.Context, req models.AccountListRequest) (models.AccountListResponse, error)

	ListAccountGroups(ctx context.Context) ([]models.AccountGroup, error)

	// ReplaceAccountGroups overwrites the members of each named group in one
	// transaction and returns the number of member rows written.
	ReplaceAccountGroups(ctx context.Context, groups []models.AccountGroup) (int64, error)

	// DeleteAccountGroups removes whole groups by name.
	DeleteAccountGroups(ctx context.Context, names []string) (int64, error)
}

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
