// Package repository provides data access layer for the role module.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	menuModel "github.com/savelyev-an/admin-console/internal/menu/model"
	roleModel "github.com/savelyev-an/admin-console/internal/role/model"
	teamModel "github.com/savelyev-an/admin-console/internal/team/model"
)

// Repository defines the interface for role data access operations.
type Repository interface {
	// TeamExists reports whether the owning team exists.
	TeamExists(ctx context.Context, teamID string) (bool, error)

	// ListByTeam returns the roles of a team with member counts, oldest first.
	ListByTeam(ctx context.Context, teamID string) ([]roleModel.RoleResponse, error)

	// GetByID finds a role by id.
	GetByID(ctx context.Context, roleID string) (*roleModel.TeamRole, error)

	// FindByTeamAndName finds a role by (team, name) for uniqueness checks.
	FindByTeamAndName(ctx context.Context, teamID, name string) (*roleModel.TeamRole, error)

	// FindByTeamAndCode finds a role by (team, code) for uniqueness checks.
	FindByTeamAndCode(ctx context.Context, teamID, code string) (*roleModel.TeamRole, error)

	// Create inserts a new role with a generated id.
	Create(ctx context.Context, teamID, name, code string, isAdmin bool) (*roleModel.TeamRole, error)

	// Save persists changes to an existing role.
	Save(ctx context.Context, role *roleModel.TeamRole) error

	// Delete removes a role row.
	Delete(ctx context.Context, roleID string) error

	// CountMembers returns how many memberships reference the role.
	CountMembers(ctx context.Context, roleID string) (int64, error)

	// GetMenuIDs returns the menu ids associated with the role.
	GetMenuIDs(ctx context.Context, roleID string) ([]string, error)

	// DeleteMenus removes all menu associations of the role.
	DeleteMenus(ctx context.Context, roleID string) error

	// InsertMenus creates menu associations for the role.
	InsertMenus(ctx context.Context, roleID string, menuIDs []string) error

	// GetFallbackMenuIDs returns the USER fallback menu set, used to seed
	// new roles on request.
	GetFallbackMenuIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new role repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// TeamExists reports whether the owning team exists.
func (r *repository) TeamExists(ctx context.Context, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", teamID).
		Count(&count).Error
	return count > 0, err
}

// ListByTeam returns the roles of a team with member counts, oldest first.
func (r *repository) ListByTeam(ctx context.Context, teamID string) ([]roleModel.RoleResponse, error) {
	var roles []roleModel.TeamRole
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}

	type roleCount struct {
		TeamRoleID string `gorm:"column:team_role_id"`
		Count      int64  `gorm:"column:count"`
	}
	var counts []roleCount
	err = r.db.WithContext(ctx).
		Table("team_members").
		Select("team_role_id, COUNT(*) AS count").
		Where("team_id = ?", teamID).
		Group("team_role_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	countByRole := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByRole[c.TeamRoleID] = c.Count
	}

	result := make([]roleModel.RoleResponse, 0, len(roles))
	for _, role := range roles {
		result = append(result, roleModel.RoleResponse{
			TeamRole:    role,
			MemberCount: countByRole[role.ID],
		})
	}
	return result, nil
}

// GetByID finds a role by id.
func (r *repository) GetByID(ctx context.Context, roleID string) (*roleModel.TeamRole, error) {
	var role roleModel.TeamRole
	err := r.db.WithContext(ctx).
		Where("id = ?", roleID).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roleModel.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindByTeamAndName finds a role by (team, name).
func (r *repository) FindByTeamAndName(ctx context.Context, teamID, name string) (*roleModel.TeamRole, error) {
	var role roleModel.TeamRole
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND name = ?", teamID, name).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roleModel.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindByTeamAndCode finds a role by (team, code).
func (r *repository) FindByTeamAndCode(ctx context.Context, teamID, code string) (*roleModel.TeamRole, error) {
	var role roleModel.TeamRole
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND code = ?", teamID, code).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roleModel.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// Create inserts a new role with a generated id.
func (r *repository) Create(ctx context.Context, teamID, name, code string, isAdmin bool) (*roleModel.TeamRole, error) {
	role := &roleModel.TeamRole{
		ID:      uuid.NewString(),
		TeamID:  teamID,
		Name:    name,
		Code:    code,
		IsAdmin: isAdmin,
	}
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// Save persists changes to an existing role.
func (r *repository) Save(ctx context.Context, role *roleModel.TeamRole) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// Delete removes a role row.
func (r *repository) Delete(ctx context.Context, roleID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", roleID).
		Delete(&roleModel.TeamRole{}).Error
}

// CountMembers returns how many memberships reference the role.
func (r *repository) CountMembers(ctx context.Context, roleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.TeamMember{}).
		Where("team_role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

// GetMenuIDs returns the menu ids associated with the role.
func (r *repository) GetMenuIDs(ctx context.Context, roleID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&roleModel.TeamRoleMenu{}).
		Where("team_role_id = ?", roleID).
		Pluck("menu_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// DeleteMenus removes all menu associations of the role.
func (r *repository) DeleteMenus(ctx context.Context, roleID string) error {
	return r.db.WithContext(ctx).
		Where("team_role_id = ?", roleID).
		Delete(&roleModel.TeamRoleMenu{}).Error
}

// InsertMenus creates menu associations for the role.
func (r *repository) InsertMenus(ctx context.Context, roleID string, menuIDs []string) error {
	if len(menuIDs) == 0 {
		return nil
	}
	rows := make([]roleModel.TeamRoleMenu, 0, len(menuIDs))
	for _, menuID := range menuIDs {
		rows = append(rows, roleModel.TeamRoleMenu{TeamRoleID: roleID, MenuID: menuID})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// GetFallbackMenuIDs returns the USER fallback menu set.
func (r *repository) GetFallbackMenuIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&menuModel.SystemRoleMenu{}).
		Where("role = ?", menuModel.SystemRoleUser).
		Pluck("menu_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
