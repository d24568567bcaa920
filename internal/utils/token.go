package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// VerificationTokenBytes is the entropy of email verification and password reset tokens
const VerificationTokenBytes = 40

// GenerateSecureToken returns n random bytes, hex encoded
func GenerateSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken is the form a token is stored in; only the raw token is ever mailed
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewHashedToken returns a raw token for the user and its hash for storage
func NewHashedToken() (raw, hashed string, err error) {
	raw, err = GenerateSecureToken(VerificationTokenBytes)
	if err != nil {
		return "", "", err
	}
	return raw, HashToken(raw), nil
}
