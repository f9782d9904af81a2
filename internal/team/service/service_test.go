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

	teamModel "github.com/savelyev-an/admin-console/internal/team/model"
	"github.com/savelyev-an/admin-console/internal/team/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Define test models
	type User struct {
		ID        string    `gorm:"primaryKey;column:id"`
		Name      string    `gorm:"column:name;not null"`
		Email     string    `gorm:"column:email;not null"`
		Password  string    `gorm:"column:password;not null"`
		Status    string    `gorm:"column:status;not null;default:active"`
		CreatedAt time.Time `gorm:"column:created_at"`
		UpdatedAt time.Time `gorm:"column:updated_at"`
	}
	type UserSystemRole struct {
		UserID    string    `gorm:"primaryKey;column:user_id"`
		Role      string    `gorm:"primaryKey;column:role"`
		CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	}
	type Team struct {
		ID          string    `gorm:"primaryKey;column:id"`
		Name        string    `gorm:"column:name;not null"`
		Description string    `gorm:"column:description"`
		ParentID    *string   `gorm:"column:parent_id"`
		CreatedAt   time.Time `gorm:"column:created_at"`
		UpdatedAt   time.Time `gorm:"column:updated_at"`
	}
	type TeamRole struct {
		ID        string    `gorm:"primaryKey;column:id"`
		TeamID    string    `gorm:"column:team_id;not null"`
		Name      string    `gorm:"column:name;not null"`
		Code      string    `gorm:"column:code;not null"`
		IsAdmin   bool      `gorm:"column:is_admin;not null;default:false"`
		CreatedAt time.Time `gorm:"column:created_at"`
		UpdatedAt time.Time `gorm:"column:updated_at"`
	}
	type TeamMember struct {
		UserID     string    `gorm:"primaryKey;column:user_id"`
		TeamID     string    `gorm:"primaryKey;column:team_id"`
		TeamRoleID string    `gorm:"column:team_role_id;not null"`
		CreatedAt  time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	}
	type TeamRoleMenu struct {
		TeamRoleID string `gorm:"primaryKey;column:team_role_id"`
		MenuID     string `gorm:"primaryKey;column:menu_id"`
	}

	// Migrate all tables
	err = db.AutoMigrate(&User{}, &UserSystemRole{}, &Team{}, &TeamRole{}, &TeamMember{}, &TeamRoleMenu{})
	require.NoError(t, err)

	return db
}

func newService(t *testing.T) (Service, *gorm.DB) {
	db := setupTestDB(t)
	repo := repository.New(db, zap.NewNop().Sugar())
	return New(repo, db, zap.NewNop().Sugar()), db
}

func insertUser(t *testing.T, db *gorm.DB, id string) {
	err := db.Exec(
		"INSERT INTO users (id, name, email, password, status) VALUES (?, ?, ?, ?, 'active')",
		id, "User "+id, id+"@example.com", "hash",
	).Error
	require.NoError(t, err)
}

func grantSystemAdmin(t *testing.T, db *gorm.DB, userID string) {
	err := db.Exec("INSERT INTO user_system_roles (user_id, role) VALUES (?, 'ADMIN')", userID).Error
	require.NoError(t, err)
}

func insertTeam(t *testing.T, db *gorm.DB, id, name string, parentID *string) {
	err := db.Exec("INSERT INTO teams (id, name, parent_id) VALUES (?, ?, ?)", id, name, parentID).Error
	require.NoError(t, err)
}

func insertRole(t *testing.T, db *gorm.DB, id, teamID, code string, isAdmin bool) {
	err := db.Exec(
		"INSERT INTO team_roles (id, team_id, name, code, is_admin) VALUES (?, ?, ?, ?, ?)",
		id, teamID, "Role "+id, code, isAdmin,
	).Error
	require.NoError(t, err)
}

func insertMember(t *testing.T, db *gorm.DB, userID, teamID, roleID string) {
	err := db.Exec(
		"INSERT INTO team_members (user_id, team_id, team_role_id) VALUES (?, ?, ?)",
		userID, teamID, roleID,
	).Error
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestService_CreateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults parent to root team", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, teamModel.RootTeamID, "System Administration", nil)
		insertUser(t, db, "op")
		grantSystemAdmin(t, db, "op")

		team, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{
			Name:       "Platform",
			OperatorID: "op",
		})

		require.NoError(t, err)
		require.NotNil(t, team.ParentID)
		assert.Equal(t, teamModel.RootTeamID, *team.ParentID)
	})

	t.Run("seeds default admin and member roles", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, teamModel.RootTeamID, "System Administration", nil)
		insertUser(t, db, "op")
		grantSystemAdmin(t, db, "op")

		team, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{
			Name:       "Platform",
			OperatorID: "op",
		})
		require.NoError(t, err)

		var codes []string
		err = db.Table("team_roles").Where("team_id = ?", team.ID).Order("code").Pluck("code", &codes).Error
		require.NoError(t, err)
		assert.Equal(t, []string{"admin", "developer"}, codes)
	})

	t.Run("missing parent", func(t *testing.T) {
		svc, db := newService(t)
		insertUser(t, db, "op")
		grantSystemAdmin(t, db, "op")

		team, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{
			Name:       "Platform",
			ParentID:   "nope",
			OperatorID: "op",
		})

		assert.Nil(t, team)
		assert.ErrorIs(t, err, teamModel.ErrParentNotFound)
	})

	t.Run("operator without authority is denied", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, teamModel.RootTeamID, "System Administration", nil)
		insertUser(t, db, "nobody")

		team, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{
			Name:       "Platform",
			OperatorID: "nobody",
		})

		assert.Nil(t, team)
		assert.ErrorIs(t, err, teamModel.ErrPermissionDenied)
	})

	t.Run("ancestor admin can create under descendant", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "parent", "Parent", nil)
		insertTeam(t, db, "child", "Child", strPtr("parent"))
		insertUser(t, db, "op")
		insertRole(t, db, "r-admin", "parent", "admin", true)
		insertMember(t, db, "op", "parent", "r-admin")

		team, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{
			Name:       "Grandchild",
			ParentID:   "child",
			OperatorID: "op",
		})

		require.NoError(t, err)
		assert.Equal(t, "child", *team.ParentID)
	})
}

func TestService_UpdateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("self parent rejected", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "t1", "Team", nil)

		team, err := svc.UpdateTeam(ctx, &teamModel.UpdateTeamRequest{
			TeamID:   "t1",
			ParentID: strPtr("t1"),
		})

		assert.Nil(t, team)
		assert.ErrorIs(t, err, teamModel.ErrSelfParent)
	})

	t.Run("cyclic parent rejected", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertTeam(t, db, "b", "B", strPtr("a"))
		insertTeam(t, db, "c", "C", strPtr("b"))

		// moving A under its grandchild C would close a cycle
		team, err := svc.UpdateTeam(ctx, &teamModel.UpdateTeamRequest{
			TeamID:   "a",
			ParentID: strPtr("c"),
		})

		assert.Nil(t, team)
		assert.ErrorIs(t, err, teamModel.ErrCyclicParent)
	})

	t.Run("empty parent moves team to root", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertTeam(t, db, "b", "B", strPtr("a"))

		team, err := svc.UpdateTeam(ctx, &teamModel.UpdateTeamRequest{
			TeamID:   "b",
			ParentID: strPtr(""),
		})

		require.NoError(t, err)
		assert.Nil(t, team.ParentID)
	})

	t.Run("renames without touching parent", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertTeam(t, db, "b", "B", strPtr("a"))

		team, err := svc.UpdateTeam(ctx, &teamModel.UpdateTeamRequest{
			TeamID: "b",
			Name:   strPtr("Renamed"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", team.Name)
		require.NotNil(t, team.ParentID)
		assert.Equal(t, "a", *team.ParentID)
	})
}

func TestService_DeleteTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("root team protected", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, teamModel.RootTeamID, "System Administration", nil)

		err := svc.DeleteTeam(ctx, &teamModel.DeleteTeamRequest{TeamID: teamModel.RootTeamID})
		assert.ErrorIs(t, err, teamModel.ErrRootTeamProtected)
	})

	t.Run("team with children protected", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertTeam(t, db, "b", "B", strPtr("a"))

		err := svc.DeleteTeam(ctx, &teamModel.DeleteTeamRequest{TeamID: "a"})
		assert.ErrorIs(t, err, teamModel.ErrTeamHasChildren)
	})

	t.Run("cascades members roles and role menus", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertUser(t, db, "u1")
		insertRole(t, db, "r1", "a", "developer", false)
		insertMember(t, db, "u1", "a", "r1")
		require.NoError(t, db.Exec(
			"INSERT INTO team_role_menus (team_role_id, menu_id) VALUES ('r1', 'm1')").Error)

		err := svc.DeleteTeam(ctx, &teamModel.DeleteTeamRequest{TeamID: "a"})
		require.NoError(t, err)

		for _, table := range []string{"teams", "team_roles", "team_members", "team_role_menus"} {
			var count int64
			require.NoError(t, db.Table(table).Count(&count).Error)
			assert.Zero(t, count, table)
		}
	})
}

func TestService_AddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("grandparent admin adds member to grandchild team", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "grand", "Grand", nil)
		insertTeam(t, db, "parent", "Parent", strPtr("grand"))
		insertTeam(t, db, "child", "Child", strPtr("parent"))
		insertUser(t, db, "op")
		insertUser(t, db, "newbie")
		insertRole(t, db, "r-grand-admin", "grand", "admin", true)
		insertRole(t, db, "r-child-dev", "child", "developer", false)
		insertMember(t, db, "op", "grand", "r-grand-admin")

		member, err := svc.AddMember(ctx, &teamModel.AddMemberRequest{
			TeamID:     "child",
			UserID:     "newbie",
			TeamRoleID: "r-child-dev",
			OperatorID: "op",
		})

		require.NoError(t, err)
		assert.Equal(t, "newbie", member.UserID)
		assert.Equal(t, "child", member.TeamID)
	})

	t.Run("sibling admin is denied", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "parent", "Parent", nil)
		insertTeam(t, db, "left", "Left", strPtr("parent"))
		insertTeam(t, db, "right", "Right", strPtr("parent"))
		insertUser(t, db, "op")
		insertUser(t, db, "newbie")
		insertRole(t, db, "r-left-admin", "left", "admin", true)
		insertRole(t, db, "r-right-dev", "right", "developer", false)
		insertMember(t, db, "op", "left", "r-left-admin")

		member, err := svc.AddMember(ctx, &teamModel.AddMemberRequest{
			TeamID:     "right",
			UserID:     "newbie",
			TeamRoleID: "r-right-dev",
			OperatorID: "op",
		})

		assert.Nil(t, member)
		assert.ErrorIs(t, err, teamModel.ErrPermissionDenied)
	})

	t.Run("duplicate membership rejected", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertUser(t, db, "op")
		insertUser(t, db, "u1")
		grantSystemAdmin(t, db, "op")
		insertRole(t, db, "r1", "a", "developer", false)
		insertMember(t, db, "u1", "a", "r1")

		member, err := svc.AddMember(ctx, &teamModel.AddMemberRequest{
			TeamID:     "a",
			UserID:     "u1",
			TeamRoleID: "r1",
			OperatorID: "op",
		})

		assert.Nil(t, member)
		assert.ErrorIs(t, err, teamModel.ErrAlreadyMember)
	})

	t.Run("role from another team rejected", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertTeam(t, db, "b", "B", nil)
		insertUser(t, db, "op")
		insertUser(t, db, "u1")
		grantSystemAdmin(t, db, "op")
		insertRole(t, db, "r-b", "b", "developer", false)

		member, err := svc.AddMember(ctx, &teamModel.AddMemberRequest{
			TeamID:     "a",
			UserID:     "u1",
			TeamRoleID: "r-b",
			OperatorID: "op",
		})

		assert.Nil(t, member)
		assert.ErrorIs(t, err, teamModel.ErrRoleNotFound)
	})
}

func TestService_UpdateMemberRole(t *testing.T) {
	ctx := context.Background()

	t.Run("admin member cannot be reassigned", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertUser(t, db, "op")
		insertUser(t, db, "u1")
		grantSystemAdmin(t, db, "op")
		insertRole(t, db, "r-admin", "a", "admin", true)
		insertRole(t, db, "r-dev", "a", "developer", false)
		insertMember(t, db, "u1", "a", "r-admin")

		member, err := svc.UpdateMemberRole(ctx, &teamModel.UpdateMemberRoleRequest{
			TeamID:     "a",
			UserID:     "u1",
			TeamRoleID: "r-dev",
			OperatorID: "op",
		})

		assert.Nil(t, member)
		assert.ErrorIs(t, err, teamModel.ErrAdminRoleProtected)
	})

	t.Run("regular member role changes", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertUser(t, db, "op")
		insertUser(t, db, "u1")
		grantSystemAdmin(t, db, "op")
		insertRole(t, db, "r-dev", "a", "developer", false)
		insertRole(t, db, "r-qa", "a", "qa", false)
		insertMember(t, db, "u1", "a", "r-dev")

		member, err := svc.UpdateMemberRole(ctx, &teamModel.UpdateMemberRoleRequest{
			TeamID:     "a",
			UserID:     "u1",
			TeamRoleID: "r-qa",
			OperatorID: "op",
		})

		require.NoError(t, err)
		assert.Equal(t, "r-qa", member.TeamRoleID)
	})
}

func TestService_ListTeams(t *testing.T) {
	ctx := context.Background()

	t.Run("system admin sees every team", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertTeam(t, db, "b", "B", nil)
		insertUser(t, db, "admin")
		grantSystemAdmin(t, db, "admin")

		teams, err := svc.ListTeams(ctx, "admin")
		require.NoError(t, err)
		assert.Len(t, teams, 2)
	})

	t.Run("member sees own teams plus descendants", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "root", "Root", nil)
		insertTeam(t, db, "mine", "Mine", strPtr("root"))
		insertTeam(t, db, "below", "Below", strPtr("mine"))
		insertTeam(t, db, "other", "Other", strPtr("root"))
		insertUser(t, db, "u1")
		insertRole(t, db, "r1", "mine", "developer", false)
		insertMember(t, db, "u1", "mine", "r1")

		teams, err := svc.ListTeams(ctx, "u1")
		require.NoError(t, err)

		ids := make(map[string]bool, len(teams))
		for _, team := range teams {
			ids[team.ID] = true
		}
		assert.True(t, ids["mine"])
		assert.True(t, ids["below"])
		assert.False(t, ids["root"])
		assert.False(t, ids["other"])
	})

	t.Run("member counts and parent projection attached", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "a", "A", nil)
		insertTeam(t, db, "b", "B", strPtr("a"))
		insertUser(t, db, "u1")
		insertRole(t, db, "r1", "b", "developer", false)
		insertMember(t, db, "u1", "b", "r1")

		teams, err := svc.ListTeams(ctx, "")
		require.NoError(t, err)
		require.Len(t, teams, 2)

		byID := make(map[string]teamModel.TeamListItem, len(teams))
		for _, team := range teams {
			byID[team.ID] = team
		}
		assert.Equal(t, int64(1), byID["a"].ChildCount)
		assert.Equal(t, int64(1), byID["b"].MemberCount)
		require.NotNil(t, byID["b"].Parent)
		assert.Equal(t, "A", byID["b"].Parent.Name)
	})
}

func TestService_GetTree(t *testing.T) {
	ctx := context.Background()

	t.Run("nests three levels and sorts by name", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "root", "Root", nil)
		insertTeam(t, db, "zeta", "Zeta", strPtr("root"))
		insertTeam(t, db, "alpha", "Alpha", strPtr("root"))
		insertTeam(t, db, "leaf", "Leaf", strPtr("alpha"))
		insertTeam(t, db, "deep", "Deep", strPtr("leaf"))

		tree, err := svc.GetTree(ctx)
		require.NoError(t, err)
		require.Len(t, tree, 1)
		require.Len(t, tree[0].Children, 2)
		assert.Equal(t, "Alpha", tree[0].Children[0].Name)
		assert.Equal(t, "Zeta", tree[0].Children[1].Name)
		require.Len(t, tree[0].Children[0].Children, 1)
		// fourth level is cut off
		assert.Empty(t, tree[0].Children[0].Children[0].Children)
	})
}

func TestService_GetTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles parent children members and roles", func(t *testing.T) {
		svc, db := newService(t)
		insertTeam(t, db, "parent", "Parent", nil)
		insertTeam(t, db, "a", "A", strPtr("parent"))
		insertTeam(t, db, "kid", "Kid", strPtr("a"))
		insertUser(t, db, "u1")
		insertRole(t, db, "r1", "a", "developer", false)
		insertMember(t, db, "u1", "a", "r1")

		detail, err := svc.GetTeam(ctx, "a")
		require.NoError(t, err)

		require.NotNil(t, detail.Parent)
		assert.Equal(t, "Parent", detail.Parent.Name)
		require.Len(t, detail.Children, 1)
		assert.Equal(t, "kid", detail.Children[0].ID)
		require.Len(t, detail.Members, 1)
		assert.Equal(t, "u1", detail.Members[0].UserID)
		require.Len(t, detail.Roles, 1)
		assert.Equal(t, "developer", detail.Roles[0].Code)
	})

	t.Run("unknown team", func(t *testing.T) {
		svc, _ := newService(t)

		detail, err := svc.GetTeam(ctx, "nope")
		assert.Nil(t, detail)
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}
