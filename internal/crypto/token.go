// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

// TagSize is the length of the MAC appended to every signed payload.
const TagSize = sha512.Size256

var tokenEncoding = base64.RawURLEncoding

// TokenCodec signs payloads with the credentials' MAC key and verifies them.
//
// Wire format: base64.RawURLEncoding(json ‖ HMAC-SHA-512/256(key, json)).
// The alphabet has no '/', '+' or '=', so tokens fit in one URL path
// segment and a query value without escaping. Without credentials the codec is in open-access mode: Sign returns the
// bare JSON and Verify accepts bare JSON. Expiry is enforced in both modes.
type TokenCodec struct {
	now func() time.Time
}

// NewTokenCodec returns a codec using the wall clock.
func NewTokenCodec() *TokenCodec {
	return &TokenCodec{now: time.Now}
}

// NewTokenCodecWithClock returns a codec reading the time from now.
func NewTokenCodecWithClock(now func() time.Time) *TokenCodec {
	return &TokenCodec{now: now}
}

// Now returns the codec's current time.
func (c *TokenCodec) Now() time.Time {
	return c.now()
}

// ExpiryAfter returns the unix expiry of a token issued now with lifetime ttl.
func (c *TokenCodec) ExpiryAfter(ttl time.Duration) uint64 {
	exp := c.now().Add(ttl).Unix()
	if exp < 0 {
		return 0
	}
	return uint64(exp)
}

// Sign serializes payload and appends the MAC. creds may be nil.
func (c *TokenCodec) Sign(creds *models.Credentials, payload models.Expirable) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingToken, err)
	}

	if creds == nil {
		return string(body), nil
	}

	key, err := MACKey(*creds)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha512.New512_256, key)
	mac.Write(body)
	signed := mac.Sum(body)

	return tokenEncoding.EncodeToString(signed), nil
}

// Verify checks signed and decodes its payload into dst, which must be a
// pointer to a type implementing [models.Expirable]. creds may be nil.
func (c *TokenCodec) Verify(creds *models.Credentials, signed string, dst models.Expirable) error {
	body := []byte(signed)

	if creds != nil {
		raw, err := tokenEncoding.DecodeString(signed)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
		if len(raw) < TagSize {
			return fmt.Errorf("%w: token shorter than its MAC", ErrMalformedToken)
		}

		key, err := MACKey(*creds)
		if err != nil {
			return err
		}

		body, tag := raw[:len(raw)-TagSize], raw[len(raw)-TagSize:]
		mac := hmac.New(sha512.New512_256, key)
		mac.Write(body)
		if !hmac.Equal(mac.Sum(nil), tag) {
			return ErrInvalidSignature
		}
		return c.decode(body, dst)
	}

	return c.decode(body, dst)
}

func (c *TokenCodec) decode(body []byte, dst models.Expirable) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if now := c.now().Unix(); now > int64(dst.ExpiresAt()) {
		return ErrTokenExpired
	}
	return nil
}

// SignSession issues a session token valid for ttl.
func (c *TokenCodec) SignSession(creds *models.Credentials, ttl time.Duration) (string, error) {
	return c.Sign(creds, models.SessionToken{Exp: c.ExpiryAfter(ttl)})
}

// VerifySession checks a session token.
func (c *TokenCodec) VerifySession(creds *models.Credentials, signed string) error {
	var token models.SessionToken
	return c.Verify(creds, signed, &token)
}
