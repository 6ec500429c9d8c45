package authkit

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password %w", ErrNoEmptyString)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// ComparePasswordAndHash checks a plaintext password against its stored hash.
func ComparePasswordAndHash(password, hash string) error {
	if password == "" || hash == "" {
		return ErrNoEmptyString
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}

	return nil
}

// RandomPasswordHash generates a hash for an unguessable throwaway password.
// Used for provider-created accounts, which authenticate through the provider
// and never through a local password.
func RandomPasswordHash() (string, error) {
	return HashPassword(uuid.NewString())
}
