// Package authority decides whether an operator may perform privileged team mutations.
package authority

import (
	"context"

	userModel "github.com/savelyev-an/admin-console/internal/user/model"
)

// Store provides the lookups the resolver needs.
type Store interface {
	// HasSystemRole reports whether the user holds the given system role.
	HasSystemRole(ctx context.Context, userID string, role userModel.SystemRole) (bool, error)

	// GetMemberAdmin reports whether a membership exists for the pair and
	// whether its team role carries the admin flag.
	GetMemberAdmin(ctx context.Context, userID, teamID string) (isMember, isAdmin bool, err error)

	// GetParentID returns the team's parent id, or nil for roots and
	// teams that do not exist.
	GetParentID(ctx context.Context, teamID string) (*string, error)
}

// Resolver answers admin-authority questions over a Store.
type Resolver struct {
	store Store
}

// New creates a new authority resolver.
func New(store Store) *Resolver {
	return &Resolver{store: store}
}

// IsSystemAdmin reports whether the user holds the ADMIN system role.
func (r *Resolver) IsSystemAdmin(ctx context.Context, userID string) (bool, error) {
	return r.store.HasSystemRole(ctx, userID, userModel.SystemRoleAdmin)
}

// IsTeamAdmin reports whether the user is a member of the team with an
// admin team role.
func (r *Resolver) IsTeamAdmin(ctx context.Context, userID, teamID string) (bool, error) {
	_, isAdmin, err := r.store.GetMemberAdmin(ctx, userID, teamID)
	return isAdmin, err
}

// IsTeamOrAncestorAdmin reports whether the user is an admin of the team
// or of any team on its parent chain. Administrative rights propagate
// downward, so a grandparent-team admin may act on a grandchild team.
// The walk keeps a visited set so a corrupted cyclic chain terminates.
func (r *Resolver) IsTeamOrAncestorAdmin(ctx context.Context, userID, teamID string) (bool, error) {
	visited := make(map[string]struct{})
	current := teamID

	for {
		if _, seen := visited[current]; seen {
			return false, nil
		}
		visited[current] = struct{}{}

		isAdmin, err := r.IsTeamAdmin(ctx, userID, current)
		if err != nil {
			return false, err
		}
		if isAdmin {
			return true, nil
		}

		parent, err := r.store.GetParentID(ctx, current)
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, nil
		}
		current = *parent
	}
}

// CanManage is the uniform authorization contract for team mutations:
// system admins may act on any team, otherwise the operator must be an
// admin of the target team or one of its ancestors.
func (r *Resolver) CanManage(ctx context.Context, operatorID, teamID string) (bool, error) {
	sysAdmin, err := r.IsSystemAdmin(ctx, operatorID)
	if err != nil {
		return false, err
	}
	if sysAdmin {
		return true, nil
	}
	return r.IsTeamOrAncestorAdmin(ctx, operatorID, teamID)
}
