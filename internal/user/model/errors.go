package model

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidStatus indicates an unknown user status value.
	ErrInvalidStatus = errors.New("status must be one of: active, inactive, suspended")
	// ErrInvalidSystemRole indicates an unknown system role value.
	ErrInvalidSystemRole = errors.New("role must be one of: ADMIN, USER")
	// ErrRoleAlreadyGranted indicates the user already holds the system role.
	ErrRoleAlreadyGranted = errors.New("system role already granted")
	// ErrRoleNotGranted indicates the user does not hold the system role.
	ErrRoleNotGranted = errors.New("system role not granted")
	// ErrPermissionDenied indicates the operator lacks system-admin authority.
	ErrPermissionDenied = errors.New("only system administrators may manage system roles")
)
