// Package service provides business logic layer for the role module.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	roleModel "github.com/savelyev-an/admin-console/internal/role/model"
	"github.com/savelyev-an/admin-console/internal/role/repository"
)

// Service defines the interface for role business logic operations.
type Service interface {
	// ListRoles returns the roles of a team with member counts.
	ListRoles(ctx context.Context, teamID string) ([]roleModel.RoleResponse, error)

	// CreateRole creates a role with per-team unique name and code.
	CreateRole(ctx context.Context, req *roleModel.CreateRoleRequest) (*roleModel.TeamRole, error)

	// UpdateRole updates a role, re-validating uniqueness excluding itself.
	UpdateRole(ctx context.Context, req *roleModel.UpdateRoleRequest) (*roleModel.TeamRole, error)

	// DeleteRole deletes a role no member references.
	DeleteRole(ctx context.Context, req *roleModel.DeleteRoleRequest) error

	// GetRoleMenus returns the menu ids associated with a role.
	GetRoleMenus(ctx context.Context, roleID string) ([]string, error)

	// UpdateRoleMenus atomically replaces the role's menu set.
	UpdateRoleMenus(ctx context.Context, req *roleModel.UpdateRoleMenusRequest) error
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new role service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, db: db, logger: logger}
}

// ListRoles returns the roles of a team with member counts.
func (s *service) ListRoles(ctx context.Context, teamID string) ([]roleModel.RoleResponse, error) {
	exists, err := s.repo.TeamExists(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, roleModel.ErrTeamNotFound
	}
	return s.repo.ListByTeam(ctx, teamID)
}

// CreateRole creates a role with per-team unique name and code. When the
// request asks for it, the new role starts with a copy of the current
// USER fallback menu set, applied in the same transaction.
func (s *service) CreateRole(ctx context.Context, req *roleModel.CreateRoleRequest) (*roleModel.TeamRole, error) {
	if len(req.Name) < 2 {
		return nil, roleModel.ErrInvalidRoleName
	}

	exists, err := s.repo.TeamExists(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, roleModel.ErrTeamNotFound
	}

	if err := s.checkUnique(ctx, req.TeamID, req.Name, req.Code, ""); err != nil {
		return nil, err
	}

	var created *roleModel.TeamRole
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		role, err := txRepo.Create(ctx, req.TeamID, req.Name, req.Code, req.IsAdmin)
		if err != nil {
			return err
		}

		if req.InheritFallbackMenus {
			fallback, err := txRepo.GetFallbackMenuIDs(ctx)
			if err != nil {
				return err
			}
			if err := txRepo.InsertMenus(ctx, role.ID, fallback); err != nil {
				return err
			}
		}

		created = role
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("role created", "role_id", created.ID, "team_id", req.TeamID, "is_admin", req.IsAdmin)
	return created, nil
}

// checkUnique enforces per-team uniqueness of name and code, excluding
// the role identified by excludeID (empty for creates).
func (s *service) checkUnique(ctx context.Context, teamID, name, code, excludeID string) error {
	if name != "" {
		existing, err := s.repo.FindByTeamAndName(ctx, teamID, name)
		if err != nil && !errors.Is(err, roleModel.ErrRoleNotFound) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return roleModel.ErrRoleNameExists
		}
	}

	if code != "" {
		existing, err := s.repo.FindByTeamAndCode(ctx, teamID, code)
		if err != nil && !errors.Is(err, roleModel.ErrRoleNotFound) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return roleModel.ErrRoleCodeExists
		}
	}

	return nil
}

// UpdateRole updates a role, re-validating uniqueness excluding itself.
func (s *service) UpdateRole(ctx context.Context, req *roleModel.UpdateRoleRequest) (*roleModel.TeamRole, error) {
	role, err := s.repo.GetByID(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	name := ""
	if req.Name != nil {
		if len(*req.Name) < 2 {
			return nil, roleModel.ErrInvalidRoleName
		}
		name = *req.Name
	}
	code := ""
	if req.Code != nil {
		code = *req.Code
	}
	if err := s.checkUnique(ctx, role.TeamID, name, code, role.ID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Code != nil {
		role.Code = *req.Code
	}
	if req.IsAdmin != nil {
		role.IsAdmin = *req.IsAdmin
	}

	if err := s.repo.Save(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole deletes a role no member references. The role's menu
// associations go with it in the same transaction.
func (s *service) DeleteRole(ctx context.Context, req *roleModel.DeleteRoleRequest) error {
	if _, err := s.repo.GetByID(ctx, req.RoleID); err != nil {
		return err
	}

	memberCount, err := s.repo.CountMembers(ctx, req.RoleID)
	if err != nil {
		return err
	}
	if memberCount > 0 {
		return roleModel.ErrRoleInUse
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if err := txRepo.DeleteMenus(ctx, req.RoleID); err != nil {
			return err
		}
		return txRepo.Delete(ctx, req.RoleID)
	})
}

// GetRoleMenus returns the menu ids associated with a role.
func (s *service) GetRoleMenus(ctx context.Context, roleID string) ([]string, error) {
	if _, err := s.repo.GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	return s.repo.GetMenuIDs(ctx, roleID)
}

// UpdateRoleMenus atomically replaces the role's menu set: the old
// associations are deleted and the new set inserted in one transaction,
// so a concurrent reader never observes a partially replaced set.
func (s *service) UpdateRoleMenus(ctx context.Context, req *roleModel.UpdateRoleMenusRequest) error {
	if _, err := s.repo.GetByID(ctx, req.RoleID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if err := txRepo.DeleteMenus(ctx, req.RoleID); err != nil {
			return err
		}
		return txRepo.InsertMenus(ctx, req.RoleID, req.MenuIDs)
	})
}
