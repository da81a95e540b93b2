package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// Digest hashes a password with SHA-256 and returns the lowercase hex
// encoding. This is the digest format stored in the users file, so it must
// never change without migrating existing data.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Verify compares a plaintext password against a stored digest in constant
// time
func Verify(password, digest string) bool {
	computed := Digest(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// Validate checks if a password meets the minimum requirement
func Validate(password string) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}
	return nil
}
