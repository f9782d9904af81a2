// Package repository provides data access layer for the team module.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	roleModel "github.com/savelyev-an/admin-console/internal/role/model"
	teamModel "github.com/savelyev-an/admin-console/internal/team/model"
	userModel "github.com/savelyev-an/admin-console/internal/user/model"
)

// Repository defines the interface for team data access operations.
// It also satisfies authority.Store.
type Repository interface {
	// ListAll returns the full team snapshot, newest first.
	ListAll(ctx context.Context) ([]teamModel.Team, error)

	// ListByIDs returns teams whose id is in the set, newest first.
	ListByIDs(ctx context.Context, ids []string) ([]teamModel.Team, error)

	// GetByID finds a team by id.
	GetByID(ctx context.Context, teamID string) (*teamModel.Team, error)

	// Create inserts a new team with a generated id.
	Create(ctx context.Context, name, description string, parentID *string) (*teamModel.Team, error)

	// Save persists changes to an existing team.
	Save(ctx context.Context, team *teamModel.Team) error

	// Delete removes the team row.
	Delete(ctx context.Context, teamID string) error

	// CountChildren returns the number of direct child teams.
	CountChildren(ctx context.Context, teamID string) (int64, error)

	// ListChildren returns direct child teams.
	ListChildren(ctx context.Context, teamID string) ([]teamModel.Team, error)

	// MemberCounts returns member counts grouped by team id.
	MemberCounts(ctx context.Context) (map[string]int64, error)

	// ChildCounts returns direct-child counts grouped by parent id.
	ChildCounts(ctx context.Context) (map[string]int64, error)

	// GetMember finds the membership row for a (user, team) pair.
	GetMember(ctx context.Context, userID, teamID string) (*teamModel.TeamMember, error)

	// AddMember inserts a membership row.
	AddMember(ctx context.Context, member *teamModel.TeamMember) error

	// UpdateMemberRole changes the team role of an existing membership.
	UpdateMemberRole(ctx context.Context, userID, teamID, teamRoleID string) error

	// RemoveMember deletes a membership row.
	RemoveMember(ctx context.Context, userID, teamID string) error

	// ListMembers returns team members with user and role projections.
	ListMembers(ctx context.Context, teamID string) ([]teamModel.MemberInfo, error)

	// ListUserTeams returns the teams a user belongs to, with role info,
	// ordered by team name.
	ListUserTeams(ctx context.Context, userID string) ([]teamModel.UserTeamInfo, error)

	// ListUserTeamIDs returns the ids of teams the user is a member of.
	ListUserTeamIDs(ctx context.Context, userID string) ([]string, error)

	// CreateRole inserts a team role. Used when seeding a new team's defaults.
	CreateRole(ctx context.Context, role *roleModel.TeamRole) error

	// GetRoleByID finds a team role by id.
	GetRoleByID(ctx context.Context, roleID string) (*roleModel.TeamRole, error)

	// ListRoles returns the roles owned by a team, oldest first.
	ListRoles(ctx context.Context, teamID string) ([]roleModel.TeamRole, error)

	// DeleteTeamAssociations removes the team's memberships, role-menu
	// rows and roles. Callers must run it inside a transaction together
	// with Delete.
	DeleteTeamAssociations(ctx context.Context, teamID string) error

	// HasSystemRole reports whether the user holds the given system role.
	HasSystemRole(ctx context.Context, userID string, role userModel.SystemRole) (bool, error)

	// GetMemberAdmin reports membership and admin-flag for a (user, team) pair.
	GetMemberAdmin(ctx context.Context, userID, teamID string) (isMember, isAdmin bool, err error)

	// GetParentID returns a team's parent id, nil for roots and unknown teams.
	GetParentID(ctx context.Context, teamID string) (*string, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// ListAll returns the full team snapshot, newest first.
func (r *repository) ListAll(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListByIDs returns teams whose id is in the set, newest first.
func (r *repository) ListByIDs(ctx context.Context, ids []string) ([]teamModel.Team, error) {
	if len(ids) == 0 {
		return []teamModel.Team{}, nil
	}
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GetByID finds a team by id.
func (r *repository) GetByID(ctx context.Context, teamID string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("id = ?", teamID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// Create inserts a new team with a generated id.
func (r *repository) Create(ctx context.Context, name, description string, parentID *string) (*teamModel.Team, error) {
	team := &teamModel.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		ParentID:    parentID,
	}
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

// Save persists changes to an existing team.
func (r *repository) Save(ctx context.Context, team *teamModel.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

// Delete removes the team row.
func (r *repository) Delete(ctx context.Context, teamID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", teamID).
		Delete(&teamModel.Team{}).Error
}

// CountChildren returns the number of direct child teams.
func (r *repository) CountChildren(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("parent_id = ?", teamID).
		Count(&count).Error
	return count, err
}

// ListChildren returns direct child teams.
func (r *repository) ListChildren(ctx context.Context, teamID string) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", teamID).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

type idCount struct {
	ID    string `gorm:"column:id"`
	Count int64  `gorm:"column:count"`
}

// MemberCounts returns member counts grouped by team id.
func (r *repository) MemberCounts(ctx context.Context) (map[string]int64, error) {
	var rows []idCount
	err := r.db.WithContext(ctx).
		Table("team_members").
		Select("team_id AS id, COUNT(*) AS count").
		Group("team_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

// ChildCounts returns direct-child counts grouped by parent id.
func (r *repository) ChildCounts(ctx context.Context) (map[string]int64, error) {
	var rows []idCount
	err := r.db.WithContext(ctx).
		Table("teams").
		Select("parent_id AS id, COUNT(*) AS count").
		Where("parent_id IS NOT NULL").
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func toCountMap(rows []idCount) map[string]int64 {
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts
}

// GetMember finds the membership row for a (user, team) pair.
func (r *repository) GetMember(ctx context.Context, userID, teamID string) (*teamModel.TeamMember, error) {
	var member teamModel.TeamMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// AddMember inserts a membership row.
func (r *repository) AddMember(ctx context.Context, member *teamModel.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// UpdateMemberRole changes the team role of an existing membership.
func (r *repository) UpdateMemberRole(ctx context.Context, userID, teamID, teamRoleID string) error {
	return r.db.WithContext(ctx).
		Model(&teamModel.TeamMember{}).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		Update("team_role_id", teamRoleID).Error
}

// RemoveMember deletes a membership row.
func (r *repository) RemoveMember(ctx context.Context, userID, teamID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		Delete(&teamModel.TeamMember{}).Error
}

// ListMembers returns team members with user and role projections.
func (r *repository) ListMembers(ctx context.Context, teamID string) ([]teamModel.MemberInfo, error) {
	var members []teamModel.MemberInfo
	err := r.db.WithContext(ctx).
		Table("team_members").
		Select("team_members.user_id, users.name, users.email, users.status, "+
			"team_roles.id AS role_id, team_roles.name AS role_name, team_roles.is_admin").
		Joins("JOIN users ON users.id = team_members.user_id").
		Joins("JOIN team_roles ON team_roles.id = team_members.team_role_id").
		Where("team_members.team_id = ?", teamID).
		Order("users.name ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	if members == nil {
		return []teamModel.MemberInfo{}, nil
	}
	return members, nil
}

// ListUserTeams returns the teams a user belongs to, ordered by team name.
func (r *repository) ListUserTeams(ctx context.Context, userID string) ([]teamModel.UserTeamInfo, error) {
	var teams []teamModel.UserTeamInfo
	err := r.db.WithContext(ctx).
		Table("team_members").
		Select("teams.id AS team_id, teams.name AS team_name, "+
			"team_roles.name AS role_name, team_roles.is_admin").
		Joins("JOIN teams ON teams.id = team_members.team_id").
		Joins("JOIN team_roles ON team_roles.id = team_members.team_role_id").
		Where("team_members.user_id = ?", userID).
		Order("teams.name ASC").
		Scan(&teams).Error
	if err != nil {
		return nil, err
	}
	if teams == nil {
		return []teamModel.UserTeamInfo{}, nil
	}
	return teams, nil
}

// ListUserTeamIDs returns the ids of teams the user is a member of.
func (r *repository) ListUserTeamIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("team_members").
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateRole inserts a team role.
func (r *repository) CreateRole(ctx context.Context, role *roleModel.TeamRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// GetRoleByID finds a team role by id.
func (r *repository) GetRoleByID(ctx context.Context, roleID string) (*roleModel.TeamRole, error) {
	var role roleModel.TeamRole
	err := r.db.WithContext(ctx).
		Where("id = ?", roleID).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// ListRoles returns the roles owned by a team, oldest first.
func (r *repository) ListRoles(ctx context.Context, teamID string) ([]roleModel.TeamRole, error) {
	var roles []roleModel.TeamRole
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// DeleteTeamAssociations removes memberships, role-menu rows and roles of a team.
func (r *repository) DeleteTeamAssociations(ctx context.Context, teamID string) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("team_id = ?", teamID).Delete(&teamModel.TeamMember{}).Error; err != nil {
		return err
	}

	roleIDs := db.Table("team_roles").Select("id").Where("team_id = ?", teamID)
	if err := db.Where("team_role_id IN (?)", roleIDs).Delete(&roleModel.TeamRoleMenu{}).Error; err != nil {
		return err
	}

	return db.Where("team_id = ?", teamID).Delete(&roleModel.TeamRole{}).Error
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

// GetMemberAdmin reports membership and admin-flag for a (user, team) pair.
func (r *repository) GetMemberAdmin(ctx context.Context, userID, teamID string) (bool, bool, error) {
	var row struct {
		IsAdmin bool `gorm:"column:is_admin"`
	}
	err := r.db.WithContext(ctx).
		Table("team_members").
		Select("team_roles.is_admin").
		Joins("JOIN team_roles ON team_roles.id = team_members.team_role_id").
		Where("team_members.user_id = ? AND team_members.team_id = ?", userID, teamID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, false, nil
		}
		return false, false, err
	}
	return true, row.IsAdmin, nil
}

// GetParentID returns a team's parent id, nil for roots and unknown teams.
func (r *repository) GetParentID(ctx context.Context, teamID string) (*string, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Select("id", "parent_id").
		Where("id = ?", teamID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return team.ParentID, nil
}
