package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ShortHash returns the first 8 hex characters of the SHA-256 of data,
// used to disambiguate download filenames.
func ShortHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:8]
}
