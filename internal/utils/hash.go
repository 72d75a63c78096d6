// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the sha256 digest of data. Attachments with equal
// digests are stored once.
func ContentHash(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// ContentHashString is the hex form of [ContentHash], used in logs.
func ContentHashString(data []byte) string {
	return hex.EncodeToString(ContentHash(data))
}
