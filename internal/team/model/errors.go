package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrParentNotFound indicates that the referenced parent team does not exist.
	ErrParentNotFound = errors.New("parent team not found")
	// ErrPermissionDenied indicates the operator lacks system-admin or
	// team-ancestor-admin authority over the target team.
	ErrPermissionDenied = errors.New("operator is not an administrator of this team or its ancestors")
	// ErrSelfParent indicates an attempt to set a team as its own parent.
	ErrSelfParent = errors.New("team cannot be its own parent")
	// ErrCyclicParent indicates the new parent is a descendant of the team.
	ErrCyclicParent = errors.New("parent change would create a cycle")
	// ErrRootTeamProtected indicates an attempt to delete the distinguished root team.
	ErrRootTeamProtected = errors.New("the system administration team cannot be deleted")
	// ErrTeamHasChildren indicates an attempt to delete a team with child teams.
	ErrTeamHasChildren = errors.New("delete child teams first")
	// ErrAlreadyMember indicates the user is already a member of the team.
	ErrAlreadyMember = errors.New("user is already a team member")
	// ErrMemberNotFound indicates no membership exists for the (user, team) pair.
	ErrMemberNotFound = errors.New("team member not found")
	// ErrRoleNotFound indicates the team role does not exist in the target team.
	ErrRoleNotFound = errors.New("team role not found in this team")
	// ErrAdminRoleProtected indicates an attempt to change the role of a member
	// who currently holds an admin role. Applies regardless of operator.
	ErrAdminRoleProtected = errors.New("cannot change the role of a team administrator")
)
