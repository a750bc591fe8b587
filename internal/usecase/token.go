package usecase

import (
	"crypto/rand"
	"encoding/hex"
)

// newSecretToken generates an opaque random token for email verification and
// password reset links.
func newSecretToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
