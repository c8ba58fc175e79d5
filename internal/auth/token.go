// Package auth provides password hashing and opaque token generation.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenSize is the entropy of an API token in bytes.
const tokenSize = 32

// GenerateToken creates a cryptographically random opaque API token.
// The token carries no claims; it is validated by database lookup only.
// Returns the token string in base64-urlencoded format.
func GenerateToken() (string, error) {
	b := make([]byte, tokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}
