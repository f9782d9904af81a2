package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	menuModel "github.com/savelyev-an/admin-console/internal/menu/model"
	"github.com/savelyev-an/admin-console/internal/menu/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Define test models
	type Menu struct {
		ID        string    `gorm:"primaryKey;column:id"`
		Name      string    `gorm:"column:name;not null"`
		Path      string    `gorm:"column:path;not null"`
		Icon      string    `gorm:"column:icon"`
		SortOrder int       `gorm:"column:sort_order;not null;default:0"`
		ParentID  *string   `gorm:"column:parent_id"`
		CreatedAt time.Time `gorm:"column:created_at"`
		UpdatedAt time.Time `gorm:"column:updated_at"`
	}
	type SystemRoleMenu struct {
		Role   string `gorm:"primaryKey;column:role"`
		MenuID string `gorm:"primaryKey;column:menu_id"`
	}
	type UserSystemRole struct {
		UserID string `gorm:"primaryKey;column:user_id"`
		Role   string `gorm:"primaryKey;column:role"`
	}
	type TeamMember struct {
		UserID     string `gorm:"primaryKey;column:user_id"`
		TeamID     string `gorm:"primaryKey;column:team_id"`
		TeamRoleID string `gorm:"column:team_role_id;not null"`
	}
	type TeamRoleMenu struct {
		TeamRoleID string `gorm:"primaryKey;column:team_role_id"`
		MenuID     string `gorm:"primaryKey;column:menu_id"`
	}

	// Migrate all tables
	err = db.AutoMigrate(&Menu{}, &SystemRoleMenu{}, &UserSystemRole{}, &TeamMember{}, &TeamRoleMenu{})
	require.NoError(t, err)

	return db
}

func newService(t *testing.T) (Service, *gorm.DB) {
	db := setupTestDB(t)
	repo := repository.New(db, zap.NewNop().Sugar())
	return New(repo, db, zap.NewNop().Sugar()), db
}

func insertMenu(t *testing.T, db *gorm.DB, id, path string, sortOrder int, parentID *string) {
	require.NoError(t, db.Exec(
		"INSERT INTO menus (id, name, path, sort_order, parent_id) VALUES (?, ?, ?, ?, ?)",
		id, "Menu "+id, path, sortOrder, parentID,
	).Error)
}

func insertFallback(t *testing.T, db *gorm.DB, menuIDs ...string) {
	for _, id := range menuIDs {
		require.NoError(t, db.Exec(
			"INSERT INTO system_role_menus (role, menu_id) VALUES ('USER', ?)", id).Error)
	}
}

func strPtr(s string) *string { return &s }

// seedForest creates: dashboard(/), admin(/admin){users, teams, menus}, reports(/reports){sales}.
func seedForest(t *testing.T, db *gorm.DB) {
	insertMenu(t, db, "dashboard", "/dashboard", 1, nil)
	insertMenu(t, db, "admin", "/admin", 2, nil)
	insertMenu(t, db, "admin-users", "/admin/users", 1, strPtr("admin"))
	insertMenu(t, db, "admin-teams", "/admin/teams", 2, strPtr("admin"))
	insertMenu(t, db, "admin-menus", "/admin/menus", 3, strPtr("admin"))
	insertMenu(t, db, "reports", "/reports", 3, nil)
	insertMenu(t, db, "reports-sales", "/reports/sales", 1, strPtr("reports"))
}

func collectIDs(nodes []menuModel.MenuNode) map[string]bool {
	ids := make(map[string]bool)
	var walk func(nodes []menuModel.MenuNode)
	walk = func(nodes []menuModel.MenuNode) {
		for _, n := range nodes {
			ids[n.ID] = true
			walk(n.Children)
		}
	}
	walk(nodes)
	return ids
}

func TestService_ResolveUserMenus(t *testing.T) {
	ctx := context.Background()

	t.Run("system admin sees the whole forest", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		require.NoError(t, db.Exec(
			"INSERT INTO user_system_roles (user_id, role) VALUES ('admin', 'ADMIN')").Error)
		insertFallback(t, db, "dashboard")

		menus, err := svc.ResolveUserMenus(ctx, "admin", "")
		require.NoError(t, err)

		ids := collectIDs(menus)
		assert.Len(t, ids, 7)
		assert.True(t, ids["admin-menus"])
	})

	t.Run("teamless user gets the fallback set", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		insertFallback(t, db, "dashboard")

		menus, err := svc.ResolveUserMenus(ctx, "u1", "")
		require.NoError(t, err)

		ids := collectIDs(menus)
		assert.Equal(t, map[string]bool{"dashboard": true}, ids)
	})

	t.Run("hidden ancestors of visible menus are completed", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		// only the leaf is granted; its parent must appear anyway
		insertFallback(t, db, "reports-sales")

		menus, err := svc.ResolveUserMenus(ctx, "u1", "")
		require.NoError(t, err)

		ids := collectIDs(menus)
		assert.True(t, ids["reports"])
		assert.True(t, ids["reports-sales"])
		assert.False(t, ids["dashboard"])
	})

	t.Run("team role menus replace the fallback entirely", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		insertFallback(t, db, "dashboard")
		require.NoError(t, db.Exec(
			"INSERT INTO team_members (user_id, team_id, team_role_id) VALUES ('u1', 'team1', 'r1')").Error)
		require.NoError(t, db.Exec(
			"INSERT INTO team_role_menus (team_role_id, menu_id) VALUES ('r1', 'reports-sales')").Error)

		menus, err := svc.ResolveUserMenus(ctx, "u1", "team1")
		require.NoError(t, err)

		ids := collectIDs(menus)
		assert.True(t, ids["reports-sales"])
		// fallback is replaced, not merged
		assert.False(t, ids["dashboard"])
	})

	t.Run("empty team role falls back", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		insertFallback(t, db, "dashboard")
		require.NoError(t, db.Exec(
			"INSERT INTO team_members (user_id, team_id, team_role_id) VALUES ('u1', 'team1', 'r1')").Error)

		menus, err := svc.ResolveUserMenus(ctx, "u1", "team1")
		require.NoError(t, err)

		ids := collectIDs(menus)
		assert.Equal(t, map[string]bool{"dashboard": true}, ids)
	})

	t.Run("no membership in given team falls back", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		insertFallback(t, db, "dashboard")

		menus, err := svc.ResolveUserMenus(ctx, "u1", "team1")
		require.NoError(t, err)

		ids := collectIDs(menus)
		assert.Equal(t, map[string]bool{"dashboard": true}, ids)
	})

	t.Run("no grants at all yields an empty forest", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)

		menus, err := svc.ResolveUserMenus(ctx, "u1", "")
		require.NoError(t, err)
		assert.Empty(t, menus)
	})

	t.Run("admin section appears with granted child visible", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		insertFallback(t, db, "admin-users")

		menus, err := svc.ResolveUserMenus(ctx, "u1", "")
		require.NoError(t, err)

		require.Len(t, menus, 1)
		assert.Equal(t, "admin", menus[0].ID)
		require.Len(t, menus[0].Children, 1)
		assert.Equal(t, "admin-users", menus[0].Children[0].ID)
	})
}

func TestService_GetTree(t *testing.T) {
	ctx := context.Background()

	t.Run("full forest ordered by sort order", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)

		menus, err := svc.GetTree(ctx)
		require.NoError(t, err)
		require.Len(t, menus, 3)
		assert.Equal(t, "dashboard", menus[0].ID)
		assert.Equal(t, "admin", menus[1].ID)
		assert.Equal(t, "reports", menus[2].ID)
		assert.Len(t, menus[1].Children, 3)
	})
}

func TestService_UpdateFallbackMenus(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin operator is denied", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)

		err := svc.UpdateFallbackMenus(ctx, &menuModel.UpdateFallbackRequest{
			MenuIDs:    []string{"dashboard"},
			OperatorID: "u1",
		})
		assert.ErrorIs(t, err, menuModel.ErrPermissionDenied)
	})

	t.Run("replaces the set atomically", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		require.NoError(t, db.Exec(
			"INSERT INTO user_system_roles (user_id, role) VALUES ('admin', 'ADMIN')").Error)
		insertFallback(t, db, "dashboard")

		err := svc.UpdateFallbackMenus(ctx, &menuModel.UpdateFallbackRequest{
			MenuIDs:    []string{"reports", "reports-sales"},
			OperatorID: "admin",
		})
		require.NoError(t, err)

		ids, err := svc.GetFallbackMenuIDs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"reports", "reports-sales"}, ids)
	})

	t.Run("empty set clears the fallback", func(t *testing.T) {
		svc, db := newService(t)
		seedForest(t, db)
		require.NoError(t, db.Exec(
			"INSERT INTO user_system_roles (user_id, role) VALUES ('admin', 'ADMIN')").Error)
		insertFallback(t, db, "dashboard")

		err := svc.UpdateFallbackMenus(ctx, &menuModel.UpdateFallbackRequest{
			MenuIDs:    []string{},
			OperatorID: "admin",
		})
		require.NoError(t, err)

		ids, err := svc.GetFallbackMenuIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
