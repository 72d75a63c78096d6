package utils

import (
	"bytes"
	"testing"
)

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("invoice"))
	b := ContentHash([]byte("invoice"))
	c := ContentHash([]byte("receipt"))

	if len(a) != 32 {
		t.Fatalf("hash length = %d, want 32", len(a))
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("expected equal content to hash equally")
	}
	if bytes.Equal(a, c) {
		t.Fatalf("expected different content to hash differently")
	}
}

func TestContentHashString(t *testing.T) {
	// sha256("")
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := ContentHashString(nil); got != empty {
		t.Fatalf("got %s, want %s", got, empty)
	}
}
