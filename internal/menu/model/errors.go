package model

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrPermissionDenied indicates the operator lacks system-admin authority.
	ErrPermissionDenied = errors.New("only system administrators may configure the fallback menu set")
)
