package pii

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of value. Values that are
// already digests are returned unchanged.
func Hash(value string) string {
	if value == "" || IsHashed(value) {
		return value
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// IsHashed reports whether value looks like a hex SHA-256 digest.
func IsHashed(value string) bool {
	if len(value) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}
