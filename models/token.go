// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AssetKindAttachments scopes asset tokens to attachment downloads.
const AssetKindAttachments = "attachments"

// Expirable is implemented by every signed payload.
type Expirable interface {
	// ExpiresAt returns the expiry as unix seconds.
	ExpiresAt() uint64
}

// SessionToken is the payload of a bearer token.
type SessionToken struct {
	Exp uint64 `json:"exp"`
}

func (t SessionToken) ExpiresAt() uint64 { return t.Exp }

// AssetToken is the payload of a signed asset URL.
type AssetToken struct {
	Exp  uint64  `json:"exp"`
	Kind *string `json:"kind"`
	ID   *string `json:"id"`
}

func (t AssetToken) ExpiresAt() uint64 { return t.Exp }
