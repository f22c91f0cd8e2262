package service

import (
	"encoding/base64"
	"testing"
)

func TestNewSessionTokenEntropyAndCharset(t *testing.T) {
	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !isURLSafeToken(token) {
		t.Fatalf("token is not URL-safe: %q", token)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not raw-url base64: %v", err)
	}
	if len(raw) < 24 {
		t.Fatalf("expected at least 24 bytes of entropy, got %d", len(raw))
	}
}

func TestNewSessionTokenUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 256; i++ {
		token, err := NewSessionToken()
		if err != nil {
			t.Fatalf("mint %d failed: %v", i, err)
		}
		if seen[token] {
			t.Fatalf("duplicate token after %d mints", i)
		}
		seen[token] = true
	}
}
