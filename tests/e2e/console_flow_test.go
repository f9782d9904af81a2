//go:build e2e
// +build e2e

package e2e

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savelyev-an/admin-console/internal/database/seed"
)

func (s *E2ETestSuite) loginAdmin() string {
	status, body := s.doRequest(http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    seed.AdminEmail,
		"password": "admin123",
	})
	require.Equal(s.T(), http.StatusOK, status, "admin login failed: %v", body)

	userID, _ := body["user_id"].(string)
	require.NotEmpty(s.T(), userID)
	return userID
}

func (s *E2ETestSuite) TestHealth() {
	status, body := s.doRequest(http.MethodGet, "/health", nil)
	assert.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "ok", body["status"])
}

func (s *E2ETestSuite) TestAuthFlows() {
	// seeded admin can log in and refresh
	status, body := s.doRequest(http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    seed.AdminEmail,
		"password": "admin123",
	})
	require.Equal(s.T(), http.StatusOK, status)

	tokens, ok := body["tokens"].(map[string]interface{})
	require.True(s.T(), ok, "login response has no tokens: %v", body)
	refresh, _ := tokens["refresh_token"].(string)
	require.NotEmpty(s.T(), refresh)

	status, body = s.doRequest(http.MethodPost, "/auth/refresh", map[string]interface{}{
		"refresh_token": refresh,
	})
	assert.Equal(s.T(), http.StatusOK, status)
	assert.NotEmpty(s.T(), body["access_token"])

	// wrong password yields the generic credentials error
	status, body = s.doRequest(http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    seed.AdminEmail,
		"password": "not-the-password",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, status)
	assert.Equal(s.T(), "INVALID_CREDENTIALS", s.errorCode(body))

	// self-registration issues tokens right away
	status, body = s.doRequest(http.MethodPost, "/auth/register", map[string]interface{}{
		"name":     "Registered User",
		"email":    "registered@example.com",
		"password": "secret123",
	})
	require.Equal(s.T(), http.StatusCreated, status, "register failed: %v", body)
	assert.NotEmpty(s.T(), body["user_id"])

	status, body = s.doRequest(http.MethodPost, "/auth/register", map[string]interface{}{
		"name":     "Registered Twice",
		"email":    "registered@example.com",
		"password": "secret123",
	})
	assert.Equal(s.T(), http.StatusConflict, status)
	assert.Equal(s.T(), "EMAIL_EXISTS", s.errorCode(body))
}

// TestAdminConsoleFlow walks the whole console lifecycle: the seeded
// admin creates a team, onboards a user into it, grants the team role
// a menu page, and the user's resolved menu reflects exactly that.
func (s *E2ETestSuite) TestAdminConsoleFlow() {
	adminID := s.loginAdmin()

	// create a team; with no parent given it lands under the root team
	status, body := s.doRequest(http.MethodPost, "/team/create", map[string]interface{}{
		"name":        "Platform",
		"description": "Platform engineering",
		"operator_id": adminID,
	})
	require.Equal(s.T(), http.StatusCreated, status, "team create failed: %v", body)

	team, ok := body["team"].(map[string]interface{})
	require.True(s.T(), ok)
	teamID, _ := team["id"].(string)
	require.NotEmpty(s.T(), teamID)

	// the new team comes with its default roles
	status, body = s.doRequest(http.MethodGet, "/role/list?team_id="+teamID, nil)
	require.Equal(s.T(), http.StatusOK, status)

	roles, ok := body["roles"].([]interface{})
	require.True(s.T(), ok)
	var developerRoleID string
	for _, raw := range roles {
		role := raw.(map[string]interface{})
		if role["code"] == "developer" {
			developerRoleID, _ = role["id"].(string)
		}
	}
	require.NotEmpty(s.T(), developerRoleID, "developer role missing: %v", roles)

	// onboard a user
	status, body = s.doRequest(http.MethodPost, "/user/create", map[string]interface{}{
		"name":     "Team Member",
		"email":    "member@example.com",
		"password": "secret123",
	})
	require.Equal(s.T(), http.StatusCreated, status, "user create failed: %v", body)
	user := body["user"].(map[string]interface{})
	memberID, _ := user["id"].(string)
	require.NotEmpty(s.T(), memberID)

	// the admin's root-team membership gives authority over the new team
	status, body = s.doRequest(http.MethodPost, "/team/member/add", map[string]interface{}{
		"team_id":      teamID,
		"user_id":      memberID,
		"team_role_id": developerRoleID,
		"operator_id":  adminID,
	})
	require.Equal(s.T(), http.StatusCreated, status, "add member failed: %v", body)

	status, body = s.doRequest(http.MethodGet, "/team/members?team_id="+teamID, nil)
	require.Equal(s.T(), http.StatusOK, status)
	members := body["members"].([]interface{})
	require.Len(s.T(), members, 1)

	// no grants anywhere yet, so the member resolves an empty menu
	status, body = s.doRequest(http.MethodGet, "/menu/user?user_id="+memberID+"&team_id="+teamID, nil)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Empty(s.T(), body["menus"])

	// find the seeded Users page under the Administration section
	status, body = s.doRequest(http.MethodGet, "/menu/tree", nil)
	require.Equal(s.T(), http.StatusOK, status)
	menus := body["menus"].([]interface{})
	require.NotEmpty(s.T(), menus)

	var usersMenuID string
	for _, raw := range menus {
		menu := raw.(map[string]interface{})
		children, _ := menu["children"].([]interface{})
		for _, rawChild := range children {
			child := rawChild.(map[string]interface{})
			if child["path"] == "/admin/users" {
				usersMenuID, _ = child["id"].(string)
			}
		}
	}
	require.NotEmpty(s.T(), usersMenuID)

	// grant the page to the developer role
	status, body = s.doRequest(http.MethodPost, "/role/menus", map[string]interface{}{
		"role_id":  developerRoleID,
		"menu_ids": []string{usersMenuID},
	})
	require.Equal(s.T(), http.StatusOK, status, "role menus update failed: %v", body)

	// the member now sees the Administration section with that one child
	status, body = s.doRequest(http.MethodGet, "/menu/user?user_id="+memberID+"&team_id="+teamID, nil)
	require.Equal(s.T(), http.StatusOK, status)
	resolved := body["menus"].([]interface{})
	require.Len(s.T(), resolved, 1)

	section := resolved[0].(map[string]interface{})
	assert.Equal(s.T(), "/admin", section["path"])
	children := section["children"].([]interface{})
	require.Len(s.T(), children, 1)
	assert.Equal(s.T(), "/admin/users", children[0].(map[string]interface{})["path"])

	// outside the team the member falls back to the USER defaults
	status, body = s.doRequest(http.MethodGet, "/menu/user?user_id="+memberID, nil)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Empty(s.T(), body["menus"])

	// the system admin configures the fallback and the member picks it up
	status, body = s.doRequest(http.MethodPost, "/menu/fallback", map[string]interface{}{
		"menu_ids":    []string{usersMenuID},
		"operator_id": adminID,
	})
	require.Equal(s.T(), http.StatusOK, status, "fallback update failed: %v", body)

	status, body = s.doRequest(http.MethodGet, "/menu/user?user_id="+memberID, nil)
	require.Equal(s.T(), http.StatusOK, status)
	resolved = body["menus"].([]interface{})
	require.Len(s.T(), resolved, 1)
	assert.Equal(s.T(), "/admin", resolved[0].(map[string]interface{})["path"])

	// a regular member has no authority to manage the team
	status, body = s.doRequest(http.MethodPost, "/team/member/add", map[string]interface{}{
		"team_id":      teamID,
		"user_id":      adminID,
		"team_role_id": developerRoleID,
		"operator_id":  memberID,
	})
	assert.Equal(s.T(), http.StatusForbidden, status)
	assert.Equal(s.T(), "PERMISSION_DENIED", s.errorCode(body))

	// the seeded admin still sees the entire forest
	status, body = s.doRequest(http.MethodGet, "/menu/user?user_id="+adminID, nil)
	require.Equal(s.T(), http.StatusOK, status)
	assert.NotEmpty(s.T(), body["menus"])
}
