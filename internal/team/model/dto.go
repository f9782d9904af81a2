// Package model provides domain models and DTOs for the team module.
package model

// CreateTeamRequest represents the request to create a team.
// ParentID defaults to the distinguished root team when empty.
type CreateTeamRequest struct {
	Name        string `json:"name"        binding:"required"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
	OperatorID  string `json:"operator_id" binding:"required"`
}

// UpdateTeamRequest represents the request to update a team.
// Nil fields are left unchanged. Setting ParentID to the empty
// string moves the team to the forest root.
type UpdateTeamRequest struct {
	TeamID      string  `json:"team_id" binding:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// DeleteTeamRequest represents the request to delete a team.
type DeleteTeamRequest struct {
	TeamID string `json:"team_id" binding:"required"`
}

// AddMemberRequest represents the request to add a member to a team.
type AddMemberRequest struct {
	TeamID     string `json:"team_id"      binding:"required"`
	UserID     string `json:"user_id"      binding:"required"`
	TeamRoleID string `json:"team_role_id" binding:"required"`
	OperatorID string `json:"operator_id"  binding:"required"`
}

// UpdateMemberRoleRequest represents the request to change a member's role.
type UpdateMemberRoleRequest struct {
	TeamID     string `json:"team_id"      binding:"required"`
	UserID     string `json:"user_id"      binding:"required"`
	TeamRoleID string `json:"team_role_id" binding:"required"`
	OperatorID string `json:"operator_id"  binding:"required"`
}

// RemoveMemberRequest represents the request to remove a member from a team.
type RemoveMemberRequest struct {
	TeamID     string `json:"team_id"     binding:"required"`
	UserID     string `json:"user_id"     binding:"required"`
	OperatorID string `json:"operator_id" binding:"required"`
}

// ParentInfo is the parent projection embedded in team responses.
type ParentInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamListItem represents one team in list responses.
type TeamListItem struct {
	Team
	Parent      *ParentInfo `json:"parent,omitempty"`
	MemberCount int64       `json:"member_count"`
	ChildCount  int64       `json:"child_count"`
}

// MemberInfo represents a team member with user and role projections.
type MemberInfo struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	RoleID   string `json:"role_id"`
	RoleName string `json:"role_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// RoleInfo is the team-role projection embedded in team detail responses.
type RoleInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	IsAdmin bool   `json:"is_admin"`
}

// TeamDetail represents a single team with its relations.
type TeamDetail struct {
	Team
	Parent   *ParentInfo  `json:"parent,omitempty"`
	Children []Team       `json:"children"`
	Members  []MemberInfo `json:"members"`
	Roles    []RoleInfo   `json:"roles"`
}

// TeamTreeNode represents a team in the nested tree response.
type TeamTreeNode struct {
	Team
	Children []TeamTreeNode `json:"children,omitempty"`
}

// UserTeamInfo represents one team a user belongs to, with their role.
type UserTeamInfo struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	RoleName string `json:"role_name"`
	IsAdmin  bool   `json:"is_admin"`
}
