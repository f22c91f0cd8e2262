package service

import (
	"crypto/rand"
	"encoding/base64"
)

// sessionTokenBytes is the entropy of a credential token. The encoded
// form is URL-safe and doubles as the cookie value.
const sessionTokenBytes = 24

func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
