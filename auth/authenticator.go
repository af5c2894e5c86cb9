// Package auth provides the admin credential check and the signed tokens
// handed out once a credential is accepted.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotConfigured is returned when no admin password hash has been set.
var ErrNotConfigured = errors.New("admin password not configured")

// Authenticator decides whether a submitted credential grants admin access.
type Authenticator interface {
	Verify(credential string) (bool, error)
}

// HashAuthenticator compares a credential against a stored hash. Bcrypt
// hashes ("$2a$", "$2b$", "$2y$") are verified with bcrypt; anything else is
// treated as a hex SHA-256 digest.
type HashAuthenticator struct {
	hash string
}

func NewHashAuthenticator(storedHash string) *HashAuthenticator {
	return &HashAuthenticator{hash: strings.TrimSpace(storedHash)}
}

func (a *HashAuthenticator) Verify(credential string) (bool, error) {
	if a.hash == "" {
		return false, ErrNotConfigured
	}

	if isBcrypt(a.hash) {
		err := bcrypt.CompareHashAndPassword([]byte(a.hash), []byte(credential))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}

	sum := sha256.Sum256([]byte(credential))
	entered := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(entered), []byte(strings.ToLower(a.hash))) == 1, nil
}

// HashPassword produces a bcrypt hash suitable for the admin.password_hash
// setting.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// SHA256Hex returns the legacy hex digest format.
func SHA256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isBcrypt(h string) bool {
	return strings.HasPrefix(h, "$2a$") || strings.HasPrefix(h, "$2b$") || strings.HasPrefix(h, "$2y$")
}
