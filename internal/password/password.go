// Package password produces the credential digests stored in user documents.
// The digest format is a lowercase hex SHA-256 of the plaintext, which is
// what existing user documents already contain; an empty stored digest marks
// an account that must pick a password on first login.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// MinLength is the minimum accepted plaintext length.
const MinLength = 4

// Hash returns the hex-encoded SHA-256 digest of plain.
func Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether plain digests to stored, in constant time.
// An empty stored digest never verifies.
func Verify(plain, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(Hash(plain)), []byte(stored)) == 1
}

// TooShort reports whether plain fails the minimum length rule.
func TooShort(plain string) bool {
	return len(plain) < MinLength
}
