// Package password wraps credential hashing for user accounts and
// refresh tokens.
package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	// HashCost is the bcrypt work factor for stored passwords.
	HashCost = 12

	// MinLength is the shortest password accepted at registration.
	MinLength = 8
)

// Hash derives a bcrypt hash from a plaintext password.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the plaintext matches the stored hash.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashToken returns the hex SHA-256 digest of a token. Refresh tokens
// are stored hashed so a leaked database cannot replay sessions.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidatePassword reports whether a candidate password meets the
// account policy.
func ValidatePassword(password string) bool {
	return len(password) >= MinLength
}
