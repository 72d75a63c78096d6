// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

// DefaultAssetTTL is the lifetime of a signed asset URL.
const DefaultAssetTTL = 10 * time.Minute

// AssetSigner issues short-lived tokens scoped to one (kind, id) pair.
// They are embedded in list responses and consumed by download URLs.
type AssetSigner struct {
	codec *TokenCodec
	ttl   time.Duration
}

// NewAssetSigner returns a signer issuing tokens valid for ttl.
// A non-positive ttl falls back to [DefaultAssetTTL].
func NewAssetSigner(codec *TokenCodec, ttl time.Duration) *AssetSigner {
	if ttl <= 0 {
		ttl = DefaultAssetTTL
	}
	return &AssetSigner{codec: codec, ttl: ttl}
}

// SignAsset issues a token for id of the given kind. The result is always
// URL safe: in open-access mode the bare JSON is base64url encoded too.
func (s *AssetSigner) SignAsset(creds *models.Credentials, kind, id string) (string, error) {
	signed, err := s.codec.Sign(creds, models.AssetToken{
		Exp:  s.codec.ExpiryAfter(s.ttl),
		Kind: &kind,
		ID:   &id,
	})
	if err != nil {
		return "", err
	}
	if creds == nil {
		return tokenEncoding.EncodeToString([]byte(signed)), nil
	}
	return signed, nil
}

// VerifyAsset returns the id carried by signed when the token is valid
// and was issued for expectedKind.
func (s *AssetSigner) VerifyAsset(creds *models.Credentials, signed, expectedKind string) (string, error) {
	if creds == nil {
		raw, err := tokenEncoding.DecodeString(signed)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
		signed = string(raw)
	}

	var token models.AssetToken
	if err := s.codec.Verify(creds, signed, &token); err != nil {
		return "", err
	}
	if token.Kind == nil || *token.Kind != expectedKind {
		return "", ErrWrongAssetKind
	}
	if token.ID == nil {
		return "", ErrMalformedToken
	}
	return *token.ID, nil
}
