// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/service"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// ---- Mock: AuthService ----

type mockAuthService struct {
	signInFn         func(ctx context.Context, password string) (string, error)
	changePasswordFn func(ctx context.Context, req models.ChangePasswordRequest) (string, error)
	refreshTokenFn   func(ctx context.Context) (string, error)
	verifyTokenFn    func(ctx context.Context, token string) (bool, error)
	authorizeFn      func(ctx context.Context, token string) error
	credentialsFn    func(ctx context.Context) (*models.Credentials, error)
}

func (m *mockAuthService) SignIn(ctx context.Context, password string) (string, error) {
	return m.signInFn(ctx, password)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (string, error) {
	return m.changePasswordFn(ctx, req)
}

func (m *mockAuthService) RefreshToken(ctx context.Context) (string, error) {
	return m.refreshTokenFn(ctx)
}

func (m *mockAuthService) VerifyToken(ctx context.Context, token string) (bool, error) {
	return m.verifyTokenFn(ctx, token)
}

// Authorize admits everything unless authorizeFn is set.
func (m *mockAuthService) Authorize(ctx context.Context, token string) error {
	if m.authorizeFn == nil {
		return nil
	}
	return m.authorizeFn(ctx, token)
}

func (m *mockAuthService) Credentials(ctx context.Context) (*models.Credentials, error) {
	if m.credentialsFn == nil {
		return nil, nil
	}
	return m.credentialsFn(ctx)
}

// ---- Mock: AttachmentService ----

type mockAttachmentService struct {
	saveFn    func(ctx context.Context, uploads ...models.AttachmentUpload) ([]models.AttachmentRef, error)
	listFn    func(ctx context.Context, req models.AttachmentListRequest) (models.PaginatedResponse[models.AttachmentListItem], error)
	getFn     func(ctx context.Context, signedID string, previewWidth int) (models.AttachmentContent, error)
	getByIDFn func(ctx context.Context, id string, previewWidth int) (models.AttachmentContent, error)
	cleanupFn func(ctx context.Context, req models.CleanupRequest) (models.AffectedResponse, error)
}

func (m *mockAttachmentService) SaveAttachments(ctx context.Context, uploads ...models.AttachmentUpload) ([]models.AttachmentRef, error) {
	return m.saveFn(ctx, uploads...)
}

func (m *mockAttachmentService) ListAttachments(ctx context.Context, req models.AttachmentListRequest) (models.PaginatedResponse[models.AttachmentListItem], error) {
	return m.listFn(ctx, req)
}

func (m *mockAttachmentService) GetAttachment(ctx context.Context, signedID string, previewWidth int) (models.AttachmentContent, error) {
	return m.getFn(ctx, signedID, previewWidth)
}

func (m *mockAttachmentService) GetAttachmentByID(ctx context.Context, id string, previewWidth int) (models.AttachmentContent, error) {
	return m.getByIDFn(ctx, id, previewWidth)
}

func (m *mockAttachmentService) CleanupAttachments(ctx context.Context, req models.CleanupRequest) (models.AffectedResponse, error) {
	return m.cleanupFn(ctx, req)
}

// ---- Mock: TransactionService ----

type mockTransactionService struct {
	saveFn   func(ctx context.Context, transactions []models.Transaction) (models.AffectedResponse, error)
	deleteFn func(ctx context.Context, ids []string) (models.DeletedResponse, error)
	listFn   func(ctx context.Context, req models.TransactionListRequest) (models.TransactionListResponse, error)
}

func (m *mockTransactionService) SaveTransactions(ctx context.Context, transactions []models.Transaction) (models.AffectedResponse, error) {
	return m.saveFn(ctx, transactions)
}

func (m *mockTransactionService) DeleteTransactions(ctx context.Context, ids []string) (models.DeletedResponse, error) {
	return m.deleteFn(ctx, ids)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, req models.TransactionListRequest) (models.TransactionListResponse, error) {
	return m.listFn(ctx, req)
}

// ---- Mock: TagService ----

type mockTagService struct {
	listFn func(ctx context.Context, req models.TagListRequest) (models.PaginatedResponse[models.TagSummary], error)
}

func (m *mockTagService) ListTags(ctx context.Context, req models.TagListRequest) (models.PaginatedResponse[models.TagSummary], error) {
	return m.listFn(ctx, req)
}

// ---- Mock: AccountService ----

type mockAccountService struct {
	listFn         func(ctx context.Context, req models.AccountListRequest) (models.AccountListResponse, error)
	listGroupsFn   func(ctx context.Context) ([]models.AccountGroup, error)
	saveGroupsFn   func(ctx context.Context, groups []models.AccountGroup) (models.AffectedResponse, error)
	deleteGroupsFn func(ctx context.Context, names []string) (models.DeletedResponse, error)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, req models.AccountListRequest) (models.AccountListResponse, error) {
	return m.listFn(ctx, req)
}

func (m *mockAccountService) ListAccountGroups(ctx context.Context) ([]models.AccountGroup, error) {
	return m.listGroupsFn(ctx)
}

func (m *mockAccountService) SaveAccountGroups(ctx context.Context, groups []models.AccountGroup) (models.AffectedResponse, error) {
	return m.saveGroupsFn(ctx, groups)
}

func (m *mockAccountService) DeleteAccountGroups(ctx context.Context, names []string) (models.DeletedResponse, error) {
	return m.deleteGroupsFn(ctx, names)
}

// ---- Mock: ChartConfigService ----

type mockChartConfigService struct {
	getFn  func(ctx context.Context, name string) (models.ChartConfig, error)
	saveFn func(ctx context.Context, cfg models.ChartConfig) (models.ChartConfig, error)
}

func (m *mockChartConfigService) GetChartConfig(ctx context.Context, name string) (models.ChartConfig, error) {
	return m.getFn(ctx, name)
}

func (m *mockChartConfigService) SaveChartConfig(ctx context.Context, cfg models.ChartConfig) (models.ChartConfig, error) {
	return m.saveFn(ctx, cfg)
}

// ---- Mock: ClientConfigService ----

type mockClientConfigService struct {
	getFn func(ctx context.Context, name string) (models.ClientConfig, error)
	setFn func(ctx context.Context, cfg models.ClientConfig) error
}

func (m *mockClientConfigService) GetClientConfig(ctx context.Context, name string) (models.ClientConfig, error) {
	return m.getFn(ctx, name)
}

func (m *mockClientConfigService) SetClientConfig(ctx context.Context, cfg models.ClientConfig) error {
	return m.setFn(ctx, cfg)
}

// ---- Mock: AppInfoService ----

type mockAppInfoService struct {
	version models.VersionResponse
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) models.VersionResponse {
	return m.version
}

// ---- Helpers ----

// newTestHandler builds a Handler over svcs with missing services filled
// by open mocks, so the router and the gate can always be exercised.
func newTestHandler(svcs service.Services) *Handler {
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: models.VersionResponse{Version: "test-version"}}
	}
	return &Handler{
		services:    &svcs,
		uploadLimit: 1 << 20,
		logger:      logger.Nop(),
	}
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	return r.WithContext(logger.Nop().WithContext(r.Context()))
}
