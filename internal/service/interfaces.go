// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

// AuthService owns the single password and every token derived from it.
//
// With no password configured the server is in open-access mode: every
// token check passes and issued tokens are unsigned.
type AuthService interface {
	// SignIn checks password and issues a session token.
	SignIn(ctx context.Context, password string) (string, error)

	// ChangePassword replaces the credentials and issues a session token
	// bound to the new signing key. An empty new password removes the
	// credentials and returns an empty token.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (string, error)

	// RefreshToken issues a fresh session token for an already
	// authenticated caller. Empty in open-access mode.
	RefreshToken(ctx context.Context) (string, error)

	// VerifyToken reports whether token is a valid session token.
	VerifyToken(ctx context.Context, token string) (bool, error)

	// Authorize returns nil when token grants access to the API.
	Authorize(ctx context.Context, token string) error

	CredentialsProvider
}

// CredentialsProvider loads the current credentials. A nil result with a
// nil error means no password is set.
type CredentialsProvider interface {
	Credentials(ctx context.Context) (*models.Credentials, error)
}

// AttachmentService stores uploaded files and serves them through signed URLs.
type AttachmentService interface {
	SaveAttachments(ctx context.Context, uploads ...models.AttachmentUpload) ([]models.AttachmentRef, error)
	ListAttachments(ctx context.Context, req models.AttachmentListRequest) (models.PaginatedResponse[models.AttachmentListItem], error)

	// GetAttachment resolves a signed id. previewWidth > 0 asks for a
	// scaled preview; content that cannot be previewed is served as is.
	GetAttachment(ctx context.Context, signedID string, previewWidth int) (models.AttachmentContent, error)

	// GetAttachmentByID is GetAttachment for callers holding a session.
	GetAttachmentByID(ctx context.Context, id string, previewWidth int) (models.AttachmentContent, error)

	CleanupAttachments(ctx context.Context, req models.CleanupRequest) (models.AffectedResponse, error)
}

type TransactionService interface {
	SaveTransactions(ctx context.Context, transactions []models.Transaction) (models.AffectedResponse, error)
	DeleteTransactions(ctx context.Context, ids []string) (models.DeletedResponse, error)
	ListTransactions(ctx context.Context, req models.TransactionListRequest) (models.TransactionListResponse, error)
}

// TransactionServiceWrapper decorates a TransactionService, for example
// with request validation.
type TransactionServiceWrapper interface {
	Wrap(TransactionService) TransactionService
}

type TagService interface {
	ListTags(ctx context.Context, req models.TagListRequest) (models.PaginatedResponse[models.TagSummary], error)
}

// AccountService lists the accounts derived from transactions and keeps
// named account groups.
type AccountService interface {
	ListAccounts(ctx context.Context, req models.AccountListRequest) (models.AccountListResponse, error)
	ListAccountGroups(ctx context.Context) ([]models.AccountGroup, error)
	SaveAccountGroups(ctx context.Context, groups []models.AccountGroup) (models.AffectedResponse, error)
	DeleteAccountGroups(ctx context.Context, names []string) (models.DeletedResponse, error)
}

// ChartConfigService keeps chart layouts of the web client.
type ChartConfigService interface {
	GetChartConfig(ctx context.Context, name string) (models.ChartConfig, error)
	SaveChartConfig(ctx context.Context, cfg models.ChartConfig) (models.ChartConfig, error)
}

// ClientConfigService keeps free-form settings of the web client.
type ClientConfigService interface {
	GetClientConfig(ctx context.Context, name string) (models.ClientConfig, error)
	SetClientConfig(ctx context.Context, cfg models.ClientConfig) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
