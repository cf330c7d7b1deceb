package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhub/tutor-server-go/internal/config"
)

const tokenEntropyBytes = 64

// GenerateToken produces an opaque session or update token: 64 bytes from
// a CSPRNG run through SHA-256 for a fixed-length printable form.
// Uniqueness is not checked here; the token columns carry unique
// constraints and a violation there surfaces as a retryable error.
func GenerateToken() (string, error) {
	bytes := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	digest := sha256.Sum256(bytes)
	return hex.EncodeToString(digest[:]), nil
}

func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), config.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func CheckPasswordHash(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}
