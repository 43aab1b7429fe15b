package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewRandomSecret returns nBytes of cryptographic randomness, hex encoded.
// Used for the placeholder password on federation-only accounts.
func NewRandomSecret(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
