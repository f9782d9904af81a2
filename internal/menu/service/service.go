// Package service provides business logic layer for the menu module,
// including the visibility resolution a user's navigation derives from.
package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	menuModel "github.com/savelyev-an/admin-console/internal/menu/model"
	"github.com/savelyev-an/admin-console/internal/menu/repository"
	"github.com/savelyev-an/admin-console/internal/menu/tree"
	userModel "github.com/savelyev-an/admin-console/internal/user/model"
)

// Service defines the interface for menu business logic operations.
type Service interface {
	// GetTree returns the full menu forest, capped at three levels.
	GetTree(ctx context.Context) ([]menuModel.MenuNode, error)

	// ResolveUserMenus computes the menu tree visible to a user,
	// optionally scoped to a team context. teamID may be empty.
	ResolveUserMenus(ctx context.Context, userID, teamID string) ([]menuModel.MenuNode, error)

	// GetFallbackMenuIDs returns the USER fallback menu-id set.
	GetFallbackMenuIDs(ctx context.Context) ([]string, error)

	// UpdateFallbackMenus atomically replaces the USER fallback set.
	// Only system admins may call it.
	UpdateFallbackMenus(ctx context.Context, req *menuModel.UpdateFallbackRequest) error
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new menu service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, db: db, logger: logger}
}

// GetTree returns the full menu forest, capped at three levels.
func (s *service) GetTree(ctx context.Context) ([]menuModel.MenuNode, error) {
	menus, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return tree.BuildAll(menus), nil
}

// ResolveUserMenus computes the menu tree visible to a user.
//
// Resolution order:
//  1. system ADMIN sees the entire forest;
//  2. the USER fallback set is the base for everyone else;
//  3. with a team context, the member's team-role menus replace the
//     fallback entirely when any are configured — an empty role (or no
//     membership) falls back;
//  4. ancestors of every visible menu are added so each visible node
//     stays reachable from a forest root.
//
// Absence of membership, menus or grants is not an error: the resolver
// may legitimately return an empty forest.
func (s *service) ResolveUserMenus(ctx context.Context, userID, teamID string) ([]menuModel.MenuNode, error) {
	isAdmin, err := s.repo.HasSystemRole(ctx, userID, userModel.SystemRoleAdmin)
	if err != nil {
		return nil, err
	}

	menus, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if isAdmin {
		return tree.BuildAll(menus), nil
	}

	fallback, err := s.repo.GetSystemRoleMenuIDs(ctx, menuModel.SystemRoleUser)
	if err != nil {
		return nil, err
	}

	base := fallback
	if teamID != "" {
		teamMenus, err := s.repo.GetMemberRoleMenuIDs(ctx, userID, teamID)
		if err != nil {
			return nil, err
		}
		if len(teamMenus) > 0 {
			base = teamMenus
		}
	}

	visible := make(map[string]struct{}, len(base))
	for _, id := range base {
		visible[id] = struct{}{}
	}
	completeAncestors(menus, visible)

	return tree.Build(menus, visible), nil
}

// completeAncestors adds every parent-chain node of the visible set so
// no visible menu is orphaned by a hidden ancestor. The walk is
// iterative with the visible set as visited guard, so it terminates
// even on accidentally cyclic data.
func completeAncestors(menus []menuModel.Menu, visible map[string]struct{}) {
	parents := make(map[string]string, len(menus))
	for _, m := range menus {
		if m.ParentID != nil {
			parents[m.ID] = *m.ParentID
		}
	}

	frontier := make([]string, 0, len(visible))
	for id := range visible {
		frontier = append(frontier, id)
	}

	for len(frontier) > 0 {
		id := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		parent, ok := parents[id]
		if !ok {
			continue
		}
		if _, seen := visible[parent]; seen {
			continue
		}
		visible[parent] = struct{}{}
		frontier = append(frontier, parent)
	}
}

// GetFallbackMenuIDs returns the USER fallback menu-id set.
func (s *service) GetFallbackMenuIDs(ctx context.Context) ([]string, error) {
	return s.repo.GetSystemRoleMenuIDs(ctx, menuModel.SystemRoleUser)
}

// UpdateFallbackMenus atomically replaces the USER fallback set. The
// delete and insert run in one transaction so concurrent readers never
// observe a half-replaced set.
func (s *service) UpdateFallbackMenus(ctx context.Context, req *menuModel.UpdateFallbackRequest) error {
	isAdmin, err := s.repo.HasSystemRole(ctx, req.OperatorID, userModel.SystemRoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return menuModel.ErrPermissionDenied
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if err := txRepo.DeleteSystemRoleMenus(ctx, menuModel.SystemRoleUser); err != nil {
			return err
		}
		return txRepo.InsertSystemRoleMenus(ctx, menuModel.SystemRoleUser, req.MenuIDs)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("fallback menu set replaced", "operator_id", req.OperatorID, "menu_count", len(req.MenuIDs))
	return nil
}
