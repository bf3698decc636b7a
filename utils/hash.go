package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// CreateSHA256Hash returns the hex digest used as a content hash for
// code artifacts.
func CreateSHA256Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
