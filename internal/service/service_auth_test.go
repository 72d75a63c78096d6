// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-keeper/internal/apperr"
	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/crypto"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/mock"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

// newTestAuthSvc wires authService with mocks and a frozen clock.
func newTestAuthSvc(t *testing.T) (*authService, *mock.MockConfigRepository, *mock.MockKeyChain, *crypto.TokenCodec) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := mock.NewMockConfigRepository(ctrl)
	keyChain := mock.NewMockKeyChain(ctrl)
	codec := crypto.NewTokenCodecWithClock(fixedClock(testNow))

	svc := NewAuthService(repo, keyChain, codec, config.App{SessionTokenDuration: time.Hour}, logger.Nop()).(*authService)
	return svc, repo, keyChain, codec
}

func expectCreds(repo *mock.MockConfigRepository, value string, found bool) *gomock.Call {
	return repo.EXPECT().Get(gomock.Any(), models.CredentialsKey).Return(value, found, nil)
}

// runUpdater makes Update call the updater with current and records the write.
func runUpdater(repo *mock.MockConfigRepository, current *string, write *store.ConfigWrite) *gomock.Call {
	return repo.EXPECT().Update(gomock.Any(), models.CredentialsKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.ConfigKey, updater store.ConfigUpdater) error {
			w, err := updater(current)
			if err != nil {
				return err
			}
			*write = w
			return nil
		})
}

// ── SignIn ──────────────────────────────────────────────────────────────────

func TestAuthService_SignIn_Success(t *testing.T) {
	svc, repo, keyChain, codec := newTestAuthSvc(t)
	creds := testCreds(1)

	expectCreds(repo, credsJSON(t, creds), true)
	keyChain.EXPECT().VerifyPassword(creds, "secret").Return(true)

	token, err := svc.SignIn(context.Background(), "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NoError(t, codec.VerifySession(&creds, token))
	assert.ErrorIs(t, codec.VerifySession(&models.Credentials{SigningKey: testCreds(2).SigningKey}, token), crypto.ErrInvalidSignature)
}

func TestAuthService_SignIn_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		password string
		setup func(t *testing.T, repo *mock.MockConfigRepository, keyChain *mock.MockKeyChain)
		kind  apperr.Kind
	}{
		{
			name:     "wrong password",
			password: "guess",
			setup: func(t *testing.T, repo *mock.MockConfigRepository, keyChain *mock.MockKeyChain) {
				expectCreds(repo, credsJSON(t, testCreds(1)), true)
				keyChain.EXPECT().VerifyPassword(gomock.Any(), "guess").Return(false)
			},
			kind: apperr.KindInvalidCredentials,
		},
		{
			name:     "no password set",
			password: "secret",
			setup: func(t *testing.T, repo *mock.MockConfigRepository, _ *mock.MockKeyChain) {
				expectCreds(repo, "", false)
			},
			kind: apperr.KindInvalidCredentials,
		},
		{
			name:     "corrupted record",
			password: "secret",
			setup: func(t *testing.T, repo *mock.MockConfigRepository, _ *mock.MockKeyChain) {
				expectCreds(repo, "{broken", true)
			},
			kind: apperr.KindDecode,
		},
		{
			name:     "storage failure",
			password: "secret",
			setup: func(t *testing.T, repo *mock.MockConfigRepository, _ *mock.MockKeyChain) {
				repo.EXPECT().Get(gomock.Any(), models.CredentialsKey).Return("", false, store.ErrExecutingQuery)
			},
			kind: apperr.KindStorage,
		},
		{
			name:     "bad signing key",
			password: "secret",
			setup: func(t *testing.T, repo *mock.MockConfigRepository, keyChain *mock.MockKeyChain) {
				expectCreds(repo, credsJSON(t, models.Credentials{PasswordHashed: "x", SigningKey: "c2hvcnQ="}), true)
				keyChain.EXPECT().VerifyPassword(gomock.Any(), "secret").Return(true)
			},
			kind: apperr.KindDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, keyChain, _ := newTestAuthSvc(t)
			tt.setup(t, repo, keyChain)

			token, err := svc.SignIn(context.Background(), tt.password)
			requireKind(t, err, tt.kind)
			assert.Empty(t, token)
		})
	}
}

// ── ChangePassword ──────────────────────────────────────────────────────────

func TestAuthService_ChangePassword_FirstPassword(t *testing.T) {
	svc, repo, keyChain, codec := newTestAuthSvc(t)
	fresh := testCreds(3)
	newPassword := "first"

	var write store.ConfigWrite
	runUpdater(repo, nil, &write)
	keyChain.EXPECT().NewCredentials("first").Return(fresh, nil)

	token, err := svc.ChangePassword(context.Background(), models.ChangePasswordRequest{NewPassword: &newPassword})
	require.NoError(t, err)
	assert.NoError(t, codec.VerifySession(&fresh, token))

	stored, ok := write.Value()
	require.True(t, ok)
	var got models.Credentials
	require.NoError(t, json.Unmarshal([]byte(stored), &got))
	assert.Equal(t, fresh, got)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, repo, keyChain, _ := newTestAuthSvc(t)
	current := credsJSON(t, testCreds(1))
	oldPassword, newPassword := "wrong", "next"

	var write store.ConfigWrite
	runUpdater(repo, &current, &write)
	keyChain.EXPECT().VerifyPassword(testCreds(1), "wrong").Return(false)

	token, err := svc.ChangePassword(context.Background(), models.ChangePasswordRequest{
		OldPassword: &oldPassword,
		NewPassword: &newPassword,
	})
	requireKind(t, err, apperr.KindInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthService_ChangePassword_ClearPassword(t *testing.T) {
	svc, repo, keyChain, _ := newTestAuthSvc(t)
	current := credsJSON(t, testCreds(1))
	oldPassword := "secret"

	var write store.ConfigWrite
	runUpdater(repo, &current, &write)
	keyChain.EXPECT().VerifyPassword(testCreds(1), "secret").Return(true)

	token, err := svc.ChangePassword(context.Background(), models.ChangePasswordRequest{OldPassword: &oldPassword})
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.True(t, write.IsDelete())
}

func TestAuthService_ChangePassword_KeyGenerationFails(t *testing.T) {
	svc, repo, keyChain, _ := newTestAuthSvc(t)
	newPassword := "next"

	var write store.ConfigWrite
	runUpdater(repo, nil, &write)
	keyChain.EXPECT().NewCredentials("next").Return(models.Credentials{}, crypto.ErrGeneratingKey)

	_, err := svc.ChangePassword(context.Background(), models.ChangePasswordRequest{NewPassword: &newPassword})
	requireKind(t, err, apperr.KindStorage)
	assert.ErrorIs(t, err, crypto.ErrGeneratingKey)
}

func TestAuthService_ChangePassword_StorageBusy(t *testing.T) {
	svc, repo, _, _ := newTestAuthSvc(t)
	newPassword := "next"

	repo.EXPECT().Update(gomock.Any(), models.CredentialsKey, gomock.Any()).
		Return(errors.Join(store.ErrRetryable, store.ErrCommitingTransaction))

	_, err := svc.ChangePassword(context.Background(), models.ChangePasswordRequest{NewPassword: &newPassword})
	requireKind(t, err, apperr.KindStorage)
	assert.ErrorIs(t, err, store.ErrRetryable)
}

// ── tokens ──────────────────────────────────────────────────────────────────

func TestAuthService_OpenAccess(t *testing.T) {
	svc, repo, _, _ := newTestAuthSvc(t)
	ctx := context.Background()
	expectCreds(repo, "", false).Times(3)

	ok, err := svc.VerifyToken(ctx, "anything")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, svc.Authorize(ctx, ""))

	token, err := svc.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestAuthService_TokenChecks(t *testing.T) {
	svc, repo, _, codec := newTestAuthSvc(t)
	ctx := context.Background()
	creds := testCreds(1)
	expectCreds(repo, credsJSON(t, creds), true).AnyTimes()

	refreshed, err := svc.RefreshToken(ctx)
	require.NoError(t, err)
	require.NoError(t, codec.VerifySession(&creds, refreshed))

	ok, err := svc.VerifyToken(ctx, refreshed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, svc.Authorize(ctx, refreshed))

	ok, err = svc.VerifyToken(ctx, "garbage")
	require.NoError(t, err)
	assert.False(t, ok)

	err = svc.Authorize(ctx, "garbage")
	requireKind(t, err, apperr.KindUnauthenticated)

	foreign, err := codec.SignSession(&models.Credentials{SigningKey: testCreds(9).SigningKey}, time.Hour)
	require.NoError(t, err)
	requireKind(t, svc.Authorize(ctx, foreign), apperr.KindUnauthenticated)

	expired, err := codec.SignSession(&creds, -time.Minute)
	require.NoError(t, err)
	requireKind(t, svc.Authorize(ctx, expired), apperr.KindUnauthenticated)
}

// TestAuthService_PasswordLifecycle runs install, rotation and removal
// against a real database.
func TestAuthService_PasswordLifecycle(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	keyChain := mock.NewMockKeyChain(gomock.NewController(t))
	svc := NewAuthService(storages.ConfigRepository, keyChain, crypto.NewTokenCodec(), config.App{SessionTokenDuration: time.Hour}, logger.Nop())

	// fresh install: everything passes, sign in is impossible
	require.NoError(t, svc.Authorize(ctx, ""))
	_, err := svc.SignIn(ctx, "")
	requireKind(t, err, apperr.KindInvalidCredentials)

	first, second := testCreds(1), testCreds(2)
	keyChain.EXPECT().NewCredentials("one").Return(first, nil)
	keyChain.EXPECT().NewCredentials("two").Return(second, nil)
	keyChain.EXPECT().VerifyPassword(first, "one").Return(true)
	keyChain.EXPECT().VerifyPassword(second, "two").Return(true)

	pw := func(s string) *string { return &s }

	tokenOne, err := svc.ChangePassword(ctx, models.ChangePasswordRequest{NewPassword: pw("one")})
	require.NoError(t, err)
	require.NoError(t, svc.Authorize(ctx, tokenOne))
	requireKind(t, svc.Authorize(ctx, ""), apperr.KindUnauthenticated)

	tokenTwo, err := svc.ChangePassword(ctx, models.ChangePasswordRequest{OldPassword: pw("one"), NewPassword: pw("two")})
	require.NoError(t, err)
	require.NoError(t, svc.Authorize(ctx, tokenTwo))
	requireKind(t, svc.Authorize(ctx, tokenOne), apperr.KindUnauthenticated)

	cleared, err := svc.ChangePassword(ctx, models.ChangePasswordRequest{OldPassword: pw("two")})
	require.NoError(t, err)
	assert.Empty(t, cleared)

	creds, err := svc.Credentials(ctx)
	require.NoError(t, err)
	assert.Nil(t, creds)
	assert.NoError(t, svc.Authorize(ctx, "anything"))
}
