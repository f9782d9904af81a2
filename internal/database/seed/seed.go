// Package seed bootstraps the minimum data the console needs to be
// administrable: the system admin account, the root team with its
// Administrator role, and the admin menu section.
package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/savelyev-an/admin-console/internal/config"
	menuModel "github.com/savelyev-an/admin-console/internal/menu/model"
	roleModel "github.com/savelyev-an/admin-console/internal/role/model"
	teamModel "github.com/savelyev-an/admin-console/internal/team/model"
	userModel "github.com/savelyev-an/admin-console/internal/user/model"
	"github.com/savelyev-an/admin-console/pkg/hash"
)

// AdminEmail is the bootstrap administrator account email.
const AdminEmail = "admin@system.com"

const adminRoleName = "Administrator"
const adminRoleCode = "admin"

// Run inserts the bootstrap data if it is missing. Every step keys on a
// natural identifier, so running it on every startup is safe.
func Run(ctx context.Context, db *gorm.DB, logger *zap.SugaredLogger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adminID, err := seedAdminUser(ctx, tx, logger)
		if err != nil {
			return err
		}
		if err := seedAdminMenus(ctx, tx); err != nil {
			return err
		}
		roleID, err := seedRootTeam(ctx, tx)
		if err != nil {
			return err
		}
		return seedAdminMembership(ctx, tx, adminID, roleID)
	})
}

func seedAdminUser(ctx context.Context, tx *gorm.DB, logger *zap.SugaredLogger) (string, error) {
	var admin userModel.User
	err := tx.WithContext(ctx).Where("email = ?", AdminEmail).First(&admin).Error
	if err == nil {
		return admin.ID, ensureAdminGrant(ctx, tx, admin.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	password := config.GetEnv("SEED_ADMIN_PASSWORD", "admin123")
	hashed, err := hash.Password(password)
	if err != nil {
		return "", err
	}

	admin = userModel.User{
		ID:       uuid.NewString(),
		Name:     "System Administrator",
		Email:    AdminEmail,
		Password: hashed,
		Status:   userModel.StatusActive,
	}
	if err := tx.WithContext(ctx).Create(&admin).Error; err != nil {
		return "", err
	}
	logger.Infow("seeded admin user", "user_id", admin.ID, "email", AdminEmail)
	return admin.ID, ensureAdminGrant(ctx, tx, admin.ID)
}

func ensureAdminGrant(ctx context.Context, tx *gorm.DB, userID string) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&userModel.UserSystemRole{}).
		Where("user_id = ? AND role = ?", userID, userModel.SystemRoleAdmin).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}
	grant := &userModel.UserSystemRole{UserID: userID, Role: userModel.SystemRoleAdmin}
	return tx.WithContext(ctx).Create(grant).Error
}

// seedAdminMenus creates the /admin section with its three children.
// Menus key on path, which is unique.
func seedAdminMenus(ctx context.Context, tx *gorm.DB) error {
	rootID, err := ensureMenu(ctx, tx, menuModel.Menu{
		Name:      "Administration",
		Path:      "/admin",
		Icon:      "settings",
		SortOrder: 100,
	})
	if err != nil {
		return err
	}

	children := []menuModel.Menu{
		{Name: "Users", Path: "/admin/users", Icon: "user", SortOrder: 1, ParentID: &rootID},
		{Name: "Teams", Path: "/admin/teams", Icon: "users", SortOrder: 2, ParentID: &rootID},
		{Name: "Menus", Path: "/admin/menus", Icon: "menu", SortOrder: 3, ParentID: &rootID},
	}
	for _, child := range children {
		if _, err := ensureMenu(ctx, tx, child); err != nil {
			return err
		}
	}
	return nil
}

func ensureMenu(ctx context.Context, tx *gorm.DB, menu menuModel.Menu) (string, error) {
	var existing menuModel.Menu
	err := tx.WithContext(ctx).Where("path = ?", menu.Path).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	menu.ID = uuid.NewString()
	if err := tx.WithContext(ctx).Create(&menu).Error; err != nil {
		return "", err
	}
	return menu.ID, nil
}

// seedRootTeam creates the admin-team root and its Administrator role,
// returning the role id for the admin membership.
func seedRootTeam(ctx context.Context, tx *gorm.DB) (string, error) {
	var team teamModel.Team
	err := tx.WithContext(ctx).Where("id = ?", teamModel.RootTeamID).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		team = teamModel.Team{
			ID:          teamModel.RootTeamID,
			Name:        "System Administration",
			Description: "Root team for platform administration",
		}
		err = tx.WithContext(ctx).Create(&team).Error
	}
	if err != nil {
		return "", err
	}

	var role roleModel.TeamRole
	err = tx.WithContext(ctx).
		Where("team_id = ? AND code = ?", teamModel.RootTeamID, adminRoleCode).
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = roleModel.TeamRole{
			ID:      uuid.NewString(),
			TeamID:  teamModel.RootTeamID,
			Name:    adminRoleName,
			Code:    adminRoleCode,
			IsAdmin: true,
		}
		err = tx.WithContext(ctx).Create(&role).Error
	}
	if err != nil {
		return "", err
	}
	return role.ID, nil
}

func seedAdminMembership(ctx context.Context, tx *gorm.DB, userID, roleID string) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&teamModel.TeamMember{}).
		Where("user_id = ? AND team_id = ?", userID, teamModel.RootTeamID).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}
	member := &teamModel.TeamMember{
		UserID:     userID,
		TeamID:     teamModel.RootTeamID,
		TeamRoleID: roleID,
	}
	return tx.WithContext(ctx).Create(member).Error
}
