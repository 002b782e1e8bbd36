package util

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt caps its input at 72 bytes, so the plaintext is reduced to a fixed
// 44-byte base64(SHA-256) form first. Passwords of any length hash and verify.
func bcryptInput(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum[:])
	return encoded
}

// HashPassword derives a salted one-way digest of the plaintext. The salt is
// embedded in the returned digest string.
func HashPassword(password string) (string, error) {
	if len(password) == 0 {
		return "", errors.New("password cannot be empty")
	}
	digest, err := bcrypt.GenerateFromPassword(bcryptInput(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext reproduces the stored digest.
// Structurally invalid digests verify as false rather than erroring.
func VerifyPassword(digest, password string) bool {
	if digest == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), bcryptInput(password)) == nil
}
