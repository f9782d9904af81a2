// Package repository provides data access layer for the menu module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	menuModel "github.com/savelyev-an/admin-console/internal/menu/model"
	userModel "github.com/savelyev-an/admin-console/internal/user/model"
)

// Repository defines the interface for menu data access operations.
type Repository interface {
	// ListAll returns the full flat menu snapshot.
	ListAll(ctx context.Context) ([]menuModel.Menu, error)

	// GetSystemRoleMenuIDs returns the menu ids granted to a system role.
	GetSystemRoleMenuIDs(ctx context.Context, role string) ([]string, error)

	// GetMemberRoleMenuIDs returns the menu ids of the team role held by
	// the user in the team. Empty when the user is not a member or the
	// role has no menus configured.
	GetMemberRoleMenuIDs(ctx context.Context, userID, teamID string) ([]string, error)

	// HasSystemRole reports whether the user holds the given system role.
	HasSystemRole(ctx context.Context, userID string, role userModel.SystemRole) (bool, error)

	// DeleteSystemRoleMenus removes all menu associations of a system role.
	DeleteSystemRoleMenus(ctx context.Context, role string) error

	// InsertSystemRoleMenus creates menu associations for a system role.
	InsertSystemRoleMenus(ctx context.Context, role string, menuIDs []string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new menu repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// ListAll returns the full flat menu snapshot.
func (r *repository) ListAll(ctx context.Context) ([]menuModel.Menu, error) {
	var menus []menuModel.Menu
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

// GetSystemRoleMenuIDs returns the menu ids granted to a system role.
func (r *repository) GetSystemRoleMenuIDs(ctx context.Context, role string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&menuModel.SystemRoleMenu{}).
		Where("role = ?", role).
		Pluck("menu_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// GetMemberRoleMenuIDs returns the menu ids of the user's team role.
func (r *repository) GetMemberRoleMenuIDs(ctx context.Context, userID, teamID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("team_role_menus").
		Joins("JOIN team_members ON team_members.team_role_id = team_role_menus.team_role_id").
		Where("team_members.user_id = ? AND team_members.team_id = ?", userID, teamID).
		Pluck("team_role_menus.menu_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
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

// DeleteSystemRoleMenus removes all menu associations of a system role.
func (r *repository) DeleteSystemRoleMenus(ctx context.Context, role string) error {
	return r.db.WithContext(ctx).
		Where("role = ?", role).
		Delete(&menuModel.SystemRoleMenu{}).Error
}

// InsertSystemRoleMenus creates menu associations for a system role.
func (r *repository) InsertSystemRoleMenus(ctx context.Context, role string, menuIDs []string) error {
	if len(menuIDs) == 0 {
		return nil
	}
	rows := make([]menuModel.SystemRoleMenu, 0, len(menuIDs))
	for _, menuID := range menuIDs {
		rows = append(rows, menuModel.SystemRoleMenu{Role: role, MenuID: menuID})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
