// Package hash provides the one-way password hashing collaborator.
package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch indicates the password does not match the stored hash.
var ErrMismatch = errors.New("password does not match")

// Password hashes a plaintext password with bcrypt.
func Password(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares a plaintext password against a stored bcrypt hash.
func Verify(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}
