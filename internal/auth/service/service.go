// Package service provides business logic layer for the auth module.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	authModel "github.com/savelyev-an/admin-console/internal/auth/model"
	userModel "github.com/savelyev-an/admin-console/internal/user/model"
	"github.com/savelyev-an/admin-console/internal/user/repository"
	userService "github.com/savelyev-an/admin-console/internal/user/service"
	"github.com/savelyev-an/admin-console/pkg/hash"
	"github.com/savelyev-an/admin-console/pkg/token"
	"github.com/savelyev-an/admin-console/pkg/validation"
)

// Service defines the interface for auth business logic operations.
type Service interface {
	// Register creates an account and returns it with a token pair.
	Register(ctx context.Context, req *authModel.RegisterRequest) (*authModel.AuthResponse, error)

	// Login verifies credentials and returns a token pair.
	Login(ctx context.Context, req *authModel.LoginRequest) (*authModel.AuthResponse, error)

	// Refresh rotates a valid refresh token into a fresh pair.
	Refresh(ctx context.Context, req *authModel.RefreshRequest) (*authModel.TokenPair, error)
}

type service struct {
	users  userService.Service
	repo   repository.Repository
	tokens *token.Manager
	logger *zap.SugaredLogger
}

// New creates a new auth service instance.
func New(users userService.Service, repo repository.Repository, tokens *token.Manager, logger *zap.SugaredLogger) Service {
	return &service{users: users, repo: repo, tokens: tokens, logger: logger}
}

// Register creates an account and returns it with a token pair. The
// account itself comes from the user service so registration and admin
// creation share one code path.
func (s *service) Register(ctx context.Context, req *authModel.RegisterRequest) (*authModel.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, &userModel.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	access, refresh, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user registered", "user_id", user.ID, "email", user.Email)
	return &authModel.AuthResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Tokens: authModel.TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

// Login verifies credentials and returns a token pair. A missing user
// and a wrong password produce the same error.
func (s *service) Login(ctx context.Context, req *authModel.LoginRequest) (*authModel.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return nil, authModel.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := hash.Verify(user.Password, req.Password); err != nil {
		return nil, authModel.ErrInvalidCredentials
	}

	if user.Status != userModel.StatusActive {
		return nil, authModel.ErrUserInactive
	}

	access, refresh, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user logged in", "user_id", user.ID)
	return &authModel.AuthResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Tokens: authModel.TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

// Refresh rotates a valid refresh token into a fresh pair. The user is
// re-checked so a deleted or suspended account cannot keep refreshing.
func (s *service) Refresh(ctx context.Context, req *authModel.RefreshRequest) (*authModel.TokenPair, error) {
	claims, err := s.tokens.Parse(req.RefreshToken)
	if err != nil {
		return nil, authModel.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return nil, authModel.ErrInvalidToken
		}
		return nil, err
	}
	if user.Status != userModel.StatusActive {
		return nil, authModel.ErrUserInactive
	}

	access, refresh, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &authModel.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
