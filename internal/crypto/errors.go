// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	ErrGeneratingKey     = errors.New("error generating random key material")
	ErrInvalidSigningKey = errors.New("invalid signing key")

	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("token signature mismatch")
	ErrTokenExpired     = errors.New("token is expired")
	ErrWrongAssetKind   = errors.New("asset token issued for another kind")
	ErrEncodingToken    = errors.New("error encoding token payload")
)
