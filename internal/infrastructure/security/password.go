// Package security provides password digests and API token issuance.
package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hasher digests passwords with unsalted SHA-256, matching the
// digests already stored for existing accounts. The scheme is
// deterministic: equal passwords always produce equal digests, so it
// offers no protection against rainbow tables. Migrating stored hashes
// to a salted KDF is tracked separately and must not change login
// behavior for current rows.
type SHA256Hasher struct{}

func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Hash returns the lowercase hex SHA-256 digest of the plaintext.
func (h *SHA256Hasher) Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
