// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "github.com/MKhiriev/go-ledger-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

// KeyChain owns the secret material of the single user: the password
// verifier and the MAC key tokens are signed with. It knows nothing about
// storage or HTTP.
//
// Flow:
//
//	creds := NewCredentials(password)   fresh salt + fresh signing key
//	ok    := VerifyPassword(creds, pw)  constant-time comparison
//	key   := MACKey(creds)              32-byte key for the token codec
type KeyChain interface {
	// NewCredentials derives a verifier for password with a fresh salt and
	// generates a fresh random signing key. Two calls never share a key.
	NewCredentials(password string) (models.Credentials, error)

	// VerifyPassword reports whether password matches the stored verifier.
	// A malformed verifier never matches.
	VerifyPassword(creds models.Credentials, password string) bool
}
