package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomToken returns a 32-byte cryptographically random token as a
// 64-character hex string. Used for email verification and password reset.
func GenerateRandomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
