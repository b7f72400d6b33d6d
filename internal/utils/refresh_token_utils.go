package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken generates a SHA256 hash of a refresh token.
func HashRefreshToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CompareRefreshTokenHash compares a raw refresh token with its stored
// SHA256 hash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}
