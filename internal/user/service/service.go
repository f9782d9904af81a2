// Package service provides business logic layer for the user module.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	userModel "github.com/savelyev-an/admin-console/internal/user/model"
	"github.com/savelyev-an/admin-console/internal/user/repository"
	"github.com/savelyev-an/admin-console/pkg/hash"
	"github.com/savelyev-an/admin-console/pkg/validation"
)

// Service defines the interface for user business logic operations.
type Service interface {
	// ListUsers returns every user with their system roles attached.
	ListUsers(ctx context.Context) ([]userModel.UserResponse, error)

	// GetUser returns a single user with system roles.
	GetUser(ctx context.Context, id string) (*userModel.UserResponse, error)

	// GetStats returns aggregate user counts.
	GetStats(ctx context.Context) (*userModel.StatsResponse, error)

	// CreateUser registers a user with a hashed password and the USER
	// system role granted in the same transaction.
	CreateUser(ctx context.Context, req *userModel.CreateUserRequest) (*userModel.UserResponse, error)

	// UpdateUser applies partial updates; a new password is re-hashed.
	UpdateUser(ctx context.Context, req *userModel.UpdateUserRequest) (*userModel.UserResponse, error)

	// DeleteUser removes a user along with grants and memberships.
	DeleteUser(ctx context.Context, req *userModel.DeleteUserRequest) error

	// GrantSystemRole grants a system role. System admins only.
	GrantSystemRole(ctx context.Context, req *userModel.SystemRoleGrantRequest) error

	// RevokeSystemRole revokes a system role. System admins only.
	RevokeSystemRole(ctx context.Context, req *userModel.SystemRoleGrantRequest) error
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, db: db, logger: logger}
}

func toResponse(u *userModel.User, roles []string) *userModel.UserResponse {
	if roles == nil {
		roles = []string{}
	}
	return &userModel.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Status:      u.Status,
		SystemRoles: roles,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ListUsers returns every user with their system roles attached. Grants
// are fetched once and joined in memory to avoid a query per user.
func (s *service) ListUsers(ctx context.Context) ([]userModel.UserResponse, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	grants, err := s.repo.SystemRolesByUser(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]userModel.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *toResponse(&users[i], grants[users[i].ID]))
	}
	return responses, nil
}

// GetUser returns a single user with system roles.
func (s *service) GetUser(ctx context.Context, id string) (*userModel.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.repo.GetSystemRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(user, roles), nil
}

// GetStats returns aggregate user counts.
func (s *service) GetStats(ctx context.Context) (*userModel.StatsResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountByStatus(ctx, userModel.StatusActive)
	if err != nil {
		return nil, err
	}
	inactive, err := s.repo.CountByStatus(ctx, userModel.StatusInactive)
	if err != nil {
		return nil, err
	}
	return &userModel.StatsResponse{Total: total, Active: active, Inactive: inactive}, nil
}

// CreateUser registers a user with a hashed password. The row and the
// default USER grant are written in one transaction.
func (s *service) CreateUser(ctx context.Context, req *userModel.CreateUserRequest) (*userModel.UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, userModel.ErrEmailExists
	} else if !errors.Is(err, userModel.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := hash.Password(req.Password)
	if err != nil {
		return nil, err
	}

	var created *userModel.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		user, err := txRepo.Create(ctx, req.Name, req.Email, hashed)
		if err != nil {
			return err
		}
		if err := txRepo.GrantSystemRole(ctx, user.ID, userModel.SystemRoleUser); err != nil {
			return err
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user created", "user_id", created.ID, "email", created.Email)
	return toResponse(created, []string{string(userModel.SystemRoleUser)}), nil
}

func validStatus(status string) bool {
	switch status {
	case userModel.StatusActive, userModel.StatusInactive, userModel.StatusSuspended:
		return true
	}
	return false
}

// UpdateUser applies partial updates; a new password is re-hashed.
func (s *service) UpdateUser(ctx context.Context, req *userModel.UpdateUserRequest) (*userModel.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, *req.Email); err == nil {
			return nil, userModel.ErrEmailExists
		} else if !errors.Is(err, userModel.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, userModel.ErrInvalidStatus
		}
		user.Status = *req.Status
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := hash.Password(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	roles, err := s.repo.GetSystemRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(user, roles), nil
}

// DeleteUser removes a user. Grants and team memberships are removed in
// the same transaction so no dangling references survive.
func (s *service) DeleteUser(ctx context.Context, req *userModel.DeleteUserRequest) error {
	if _, err := s.repo.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if err := txRepo.DeleteUserAssociations(ctx, req.UserID); err != nil {
			return err
		}
		return txRepo.Delete(ctx, req.UserID)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("user deleted", "user_id", req.UserID)
	return nil
}

func parseSystemRole(role string) (userModel.SystemRole, error) {
	switch userModel.SystemRole(role) {
	case userModel.SystemRoleAdmin:
		return userModel.SystemRoleAdmin, nil
	case userModel.SystemRoleUser:
		return userModel.SystemRoleUser, nil
	}
	return "", userModel.ErrInvalidSystemRole
}

func (s *service) requireSystemAdmin(ctx context.Context, operatorID string) error {
	isAdmin, err := s.repo.HasSystemRole(ctx, operatorID, userModel.SystemRoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return userModel.ErrPermissionDenied
	}
	return nil
}

// GrantSystemRole grants a system role. System admins only.
func (s *service) GrantSystemRole(ctx context.Context, req *userModel.SystemRoleGrantRequest) error {
	role, err := parseSystemRole(req.Role)
	if err != nil {
		return err
	}
	if err := s.requireSystemAdmin(ctx, req.OperatorID); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	held, err := s.repo.HasSystemRole(ctx, req.UserID, role)
	if err != nil {
		return err
	}
	if held {
		return userModel.ErrRoleAlreadyGranted
	}

	if err := s.repo.GrantSystemRole(ctx, req.UserID, role); err != nil {
		return err
	}

	s.logger.Infow("system role granted", "user_id", req.UserID, "role", role, "operator_id", req.OperatorID)
	return nil
}

// RevokeSystemRole revokes a system role. System admins only.
func (s *service) RevokeSystemRole(ctx context.Context, req *userModel.SystemRoleGrantRequest) error {
	role, err := parseSystemRole(req.Role)
	if err != nil {
		return err
	}
	if err := s.requireSystemAdmin(ctx, req.OperatorID); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	removed, err := s.repo.RevokeSystemRole(ctx, req.UserID, role)
	if err != nil {
		return err
	}
	if removed == 0 {
		return userModel.ErrRoleNotGranted
	}

	s.logger.Infow("system role revoked", "user_id", req.UserID, "role", role, "operator_id", req.OperatorID)
	return nil
}
