package model

import "errors"

var (
	// ErrRoleNotFound indicates that the requested role does not exist.
	ErrRoleNotFound = errors.New("team role not found")
	// ErrTeamNotFound indicates that the owning team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrRoleNameExists indicates another role in the same team uses the name.
	ErrRoleNameExists = errors.New("role name already exists in this team")
	// ErrRoleCodeExists indicates another role in the same team uses the code.
	ErrRoleCodeExists = errors.New("role code already exists in this team")
	// ErrRoleInUse indicates members still reference the role.
	ErrRoleInUse = errors.New("role is still assigned to team members")
	// ErrInvalidRoleName indicates the provided role name is invalid.
	ErrInvalidRoleName = errors.New("role name must be at least 2 characters")
)
