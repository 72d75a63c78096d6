// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-ledger-keeper/models"
	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of the password salt in bytes.
	SaltSize = 16
	// KeySize is the length of the MAC signing key in bytes.
	KeySize = 32
)

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	// Argon2id tuning parameters. Verification reads them back from the
	// stored verifier, so changing them does not lock out old passwords.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewKeyChain constructs a [KeyChain] with the Argon2id parameters
// recommended by OWASP:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes
func NewKeyChain() KeyChain {
	return &keyChain{
		argonTime:    1,
		argonMemory:  64 * 1024,
		argonThreads: 4,
		argonKeyLen:  32,
	}
}

// NewCredentials implements [KeyChain].
func (k *keyChain) NewCredentials(password string) (models.Credentials, error) {
	salt, err := randomBytes(SaltSize)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("%w: salt: %w", ErrGeneratingKey, err)
	}

	signingKey, err := randomBytes(KeySize)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("%w: signing key: %w", ErrGeneratingKey, err)
	}

	hash := argon2.IDKey([]byte(password), salt, k.argonTime, k.argonMemory, k.argonThreads, k.argonKeyLen)
	verifier := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, k.argonMemory, k.argonTime, k.argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return models.Credentials{
		PasswordHashed: base64.StdEncoding.EncodeToString([]byte(verifier)),
		SigningKey:     base64.StdEncoding.EncodeToString(signingKey),
	}, nil
}

// VerifyPassword implements [KeyChain].
func (k *keyChain) VerifyPassword(creds models.Credentials, password string) bool {
	raw, err := base64.StdEncoding.DecodeString(creds.PasswordHashed)
	if err != nil {
		return false
	}

	var (
		version    int
		memory     uint32
		iterations uint32
		threads    uint8
	)
	// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	parts := strings.Split(string(raw), "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil || iterations == 0 || threads == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// MACKey decodes the signing key of creds.
func MACKey(creds models.Credentials) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(creds.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSigningKey, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSigningKey, len(key), KeySize)
	}
	return key, nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
