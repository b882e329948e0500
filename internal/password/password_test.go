package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	// Known SHA-256 vector.
	assert.Equal(t,
		"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		Hash("test"))

	assert.Equal(t, Hash("hemligt"), Hash("hemligt"))
	assert.NotEqual(t, Hash("hemligt"), Hash("hemligt "))
}

func TestVerify(t *testing.T) {
	stored := Hash("korrekt")

	assert.True(t, Verify("korrekt", stored))
	assert.False(t, Verify("fel", stored))

	// Pending accounts have an empty digest and must never verify,
	// not even against the digest of the empty string.
	assert.False(t, Verify("", ""))
	assert.False(t, Verify("vadsomhelst", ""))
}

func TestTooShort(t *testing.T) {
	assert.True(t, TooShort("abc"))
	assert.False(t, TooShort("abcd"))
}
