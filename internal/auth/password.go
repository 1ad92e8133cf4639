package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a one-way bcrypt hash of the plaintext password. The
// plaintext is never persisted anywhere.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// ComparePassword reports whether the plaintext password matches the stored
// hash.
func ComparePassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(password),
	) == nil
}
