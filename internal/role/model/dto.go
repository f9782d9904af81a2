// Package model provides domain models and DTOs for the role module.
package model

// CreateRoleRequest represents the request to create a team role.
// When InheritFallbackMenus is set, the new role starts with a copy
// of the current USER fallback menu set.
type CreateRoleRequest struct {
	TeamID               string `json:"team_id" binding:"required"`
	Name                 string `json:"name"    binding:"required"`
	Code                 string `json:"code"    binding:"required"`
	IsAdmin              bool   `json:"is_admin"`
	InheritFallbackMenus bool   `json:"inherit_fallback_menus"`
}

// UpdateRoleRequest represents the request to update a team role.
// Nil fields are left unchanged.
type UpdateRoleRequest struct {
	RoleID  string  `json:"role_id" binding:"required"`
	Name    *string `json:"name"`
	Code    *string `json:"code"`
	IsAdmin *bool   `json:"is_admin"`
}

// DeleteRoleRequest represents the request to delete a team role.
type DeleteRoleRequest struct {
	RoleID string `json:"role_id" binding:"required"`
}

// UpdateRoleMenusRequest replaces the full menu set of a role.
type UpdateRoleMenusRequest struct {
	RoleID  string   `json:"role_id"  binding:"required"`
	MenuIDs []string `json:"menu_ids" binding:"required"`
}

// RoleResponse represents one role in list responses.
type RoleResponse struct {
	TeamRole
	MemberCount int64 `json:"member_count"`
}
