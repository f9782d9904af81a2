// Package model provides DTOs and errors for the auth module.
package model

// RegisterRequest represents the request to register an account.
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required" validate:"required,min=2"`
	Email    string `json:"email"    binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
}

// LoginRequest represents the request to authenticate.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// RefreshRequest represents the request to rotate a token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenPair is the access/refresh pair returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse carries the authenticated user and their tokens.
type AuthResponse struct {
	UserID string    `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Tokens TokenPair `json:"tokens"`
}
