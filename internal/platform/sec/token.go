// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Refresh secrets are opaque random values, never structured tokens: their
// validity is established purely by the server-side hash lookup, which is
// what makes them revocable.

// GenerateSecureToken returns byteLength random bytes, hex-encoded.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// No salt is used: the input is itself high-entropy and never reused, so a
// rainbow-table attack has nothing to precompute against.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

// VerifyTokenHash recomputes the hash of a presented token and compares it
// against the stored hash in constant time.
func VerifyTokenHash(token, storedHash string) bool {
	calculated := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(calculated), []byte(storedHash)) == 1
}
