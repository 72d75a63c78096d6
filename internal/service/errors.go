// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-ledger-keeper/internal/apperr"
	"github.com/MKhiriev/go-ledger-keeper/internal/crypto"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/internal/validators"
)

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrNoStorages            = errors.New("storages are not initialized")
)

// Client-facing errors with a fixed message.
var (
	errWrongPassword       = apperr.New(apperr.KindInvalidCredentials, "invalid credentials")
	errUnauthenticated     = apperr.New(apperr.KindUnauthenticated, "unauthenticated")
	errAttachmentNotFound  = apperr.New(apperr.KindNotFound, "attachment not found")
	errEmptyAttachmentName = apperr.New(apperr.KindInvalidArgument, "file name is empty")
	errEmptyAttachmentData = apperr.New(apperr.KindInvalidArgument, "data is missing")
	errEmptyConfigName     = apperr.New(apperr.KindInvalidArgument, "config name is empty")
	errEmptyGroupName      = apperr.New(apperr.KindInvalidArgument, "group name is empty")
)

// toAppError classifies errors from the layers below. Errors that already
// carry a kind pass through.
func toAppError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, store.ErrAttachmentNotFound):
		return &apperr.Error{Kind: apperr.KindNotFound, Message: "attachment not found", Err: err}
	case errors.Is(err, store.ErrDecodingConfig), errors.Is(err, store.ErrDecodingRow),
		errors.Is(err, crypto.ErrInvalidSigningKey):
		return &apperr.Error{Kind: apperr.KindDecode, Message: "stored data is corrupted", Err: err}
	case errors.Is(err, validators.ErrInvalidRequest):
		return &apperr.Error{Kind: apperr.KindInvalidArgument, Message: err.Error(), Err: err}
	case errors.Is(err, store.ErrRetryable):
		return &apperr.Error{Kind: apperr.KindStorage, Message: "storage is busy, retry later", Err: err}
	default:
		return &apperr.Error{Kind: apperr.KindStorage, Message: "storage error", Err: err}
	}
}
