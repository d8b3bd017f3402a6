package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const apiKeyBytes = 32 // 256 bits

// GenerateAPIKey returns a random 64 character hex key.
func GenerateAPIKey() (string, error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashAPIKey is the lookup digest stored in place of the key itself.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
