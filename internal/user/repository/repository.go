// Package repository provides data access layer for the user module.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	userModel "github.com/savelyev-an/admin-console/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// ListAll returns every user ordered by creation time.
	ListAll(ctx context.Context) ([]userModel.User, error)

	// GetByID returns a user by id or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*userModel.User, error)

	// GetByEmail returns a user by email or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*userModel.User, error)

	// Create persists a new user with a generated id.
	Create(ctx context.Context, name, email, passwordHash string) (*userModel.User, error)

	// Save persists changes to an existing user.
	Save(ctx context.Context, user *userModel.User) error

	// Delete removes a user row.
	Delete(ctx context.Context, id string) error

	// CountByStatus returns the number of users with the given status.
	CountByStatus(ctx context.Context, status string) (int64, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)

	// GetSystemRoles returns the system roles granted to a user.
	GetSystemRoles(ctx context.Context, userID string) ([]string, error)

	// SystemRolesByUser returns every grant grouped by user id.
	SystemRolesByUser(ctx context.Context) (map[string][]string, error)

	// HasSystemRole reports whether the user holds the given system role.
	HasSystemRole(ctx context.Context, userID string, role userModel.SystemRole) (bool, error)

	// GrantSystemRole creates a system-role grant.
	GrantSystemRole(ctx context.Context, userID string, role userModel.SystemRole) error

	// RevokeSystemRole removes a system-role grant. Returns the number of
	// rows removed so the caller can distinguish a missing grant.
	RevokeSystemRole(ctx context.Context, userID string, role userModel.SystemRole) (int64, error)

	// DeleteUserAssociations removes the user's system-role grants and
	// team memberships. Run inside the same transaction as Delete.
	DeleteUserAssociations(ctx context.Context, userID string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// ListAll returns every user ordered by creation time.
func (r *repository) ListAll(ctx context.Context) ([]userModel.User, error) {
	var users []userModel.User
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns a user by id or ErrUserNotFound.
func (r *repository) GetByID(ctx context.Context, id string) (*userModel.User, error) {
	var user userModel.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userModel.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns a user by email or ErrUserNotFound.
func (r *repository) GetByEmail(ctx context.Context, email string) (*userModel.User, error) {
	var user userModel.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userModel.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create persists a new user with a generated id.
func (r *repository) Create(ctx context.Context, name, email, passwordHash string) (*userModel.User, error) {
	user := &userModel.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Status:   userModel.StatusActive,
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Save persists changes to an existing user.
func (r *repository) Save(ctx context.Context, user *userModel.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes a user row.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&userModel.User{}).Error
}

// CountByStatus returns the number of users with the given status.
func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Count returns the total number of users.
func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Count(&count).Error
	return count, err
}

// GetSystemRoles returns the system roles granted to a user.
func (r *repository) GetSystemRoles(ctx context.Context, userID string) ([]string, error) {
	var roles []string
	err := r.db.WithContext(ctx).
		Model(&userModel.UserSystemRole{}).
		Where("user_id = ?", userID).
		Order("role ASC").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []string{}
	}
	return roles, nil
}

// SystemRolesByUser returns every grant grouped by user id.
func (r *repository) SystemRolesByUser(ctx context.Context) (map[string][]string, error) {
	var grants []userModel.UserSystemRole
	err := r.db.WithContext(ctx).
		Order("role ASC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	byUser := make(map[string][]string, len(grants))
	for _, g := range grants {
		byUser[g.UserID] = append(byUser[g.UserID], string(g.Role))
	}
	return byUser, nil
}

// HasSystemRole reports whether the user holds the given system role.
func (r *repository) HasSystemRole(ctx context.Context, userID string, role userModel.SystemRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel.UserSystemRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	return count > 0, err
}

// GrantSystemRole creates a system-role grant.
func (r *repository) GrantSystemRole(ctx context.Context, userID string, role userModel.SystemRole) error {
	grant := &userModel.UserSystemRole{UserID: userID, Role: role}
	return r.db.WithContext(ctx).Create(grant).Error
}

// RevokeSystemRole removes a system-role grant.
func (r *repository) RevokeSystemRole(ctx context.Context, userID string, role userModel.SystemRole) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&userModel.UserSystemRole{})
	return result.RowsAffected, result.Error
}

// DeleteUserAssociations removes the user's grants and team memberships.
func (r *repository) DeleteUserAssociations(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&userModel.UserSystemRole{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Exec("DELETE FROM team_members WHERE user_id = ?", userID).Error
}
