package model

import "errors"

var (
	// ErrInvalidCredentials indicates the email or password is wrong. The
	// two cases share one error so responses do not leak which part failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserInactive indicates the account is not in active status.
	ErrUserInactive = errors.New("account is not active")
	// ErrInvalidToken indicates the refresh token failed validation.
	ErrInvalidToken = errors.New("invalid or expired token")
)
