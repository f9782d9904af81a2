// Package model provides domain models and DTOs for the user module.
package model

import "time"

// CreateUserRequest represents the request to create a user.
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required" validate:"required,min=2"`
	Email    string `json:"email"    binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
}

// UpdateUserRequest represents the request to update a user.
// Nil fields are left unchanged; a non-empty password is re-hashed.
type UpdateUserRequest struct {
	UserID   string  `json:"user_id" binding:"required"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Status   *string `json:"status"`
}

// DeleteUserRequest represents the request to delete a user.
type DeleteUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// SystemRoleGrantRequest represents a system-role grant or revoke.
// OperatorID identifies the caller; only system admins may mutate grants.
type SystemRoleGrantRequest struct {
	UserID     string `json:"user_id"     binding:"required"`
	Role       string `json:"role"        binding:"required"`
	OperatorID string `json:"operator_id" binding:"required"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	SystemRoles []string  `json:"system_roles"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatsResponse represents aggregate user counts.
type StatsResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}
