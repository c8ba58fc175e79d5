// Package id generates prefixed unique identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a new ID of the form "prefix-<nanoid>", e.g.
// "user-V1StGXR8_Z5jdHi6B-myT". The random part is a 21-character
// URL-safe NanoID, shorter than a UUID with comparable entropy.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is Generate, panicking when the system entropy source
// fails. Intended for callers that cannot reasonably continue without
// an ID.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
