// Package cryptox provides password hashing helpers for the server.
// Digests are bcrypt with a per-call random salt, so hashing the same
// password twice yields different digests that both verify.
package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt digest from a plaintext password.
// The plaintext must never be stored or logged; only the digest is.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether password matches the stored digest.
// bcrypt.CompareHashAndPassword performs a constant-time comparison, so
// the run time does not depend on where a mismatch occurs.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
