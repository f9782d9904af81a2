// Package service provides business logic layer for the team module.
package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	roleModel "github.com/savelyev-an/admin-console/internal/role/model"
	"github.com/savelyev-an/admin-console/internal/team/authority"
	"github.com/savelyev-an/admin-console/internal/team/hierarchy"
	teamModel "github.com/savelyev-an/admin-console/internal/team/model"
	"github.com/savelyev-an/admin-console/internal/team/repository"
)

// Default roles created for every new team.
const (
	defaultAdminRoleName  = "Team Admin"
	defaultAdminRoleCode  = "admin"
	defaultMemberRoleName = "Developer"
	defaultMemberRoleCode = "developer"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// ListTeams returns teams visible to the user: everything for system
	// admins and anonymous callers, otherwise the user's teams plus all
	// their descendants.
	ListTeams(ctx context.Context, userID string) ([]teamModel.TeamListItem, error)

	// GetTree returns the nested team forest, capped at three levels.
	GetTree(ctx context.Context) ([]teamModel.TeamTreeNode, error)

	// GetTeam returns a team with parent, children, members and roles.
	GetTeam(ctx context.Context, teamID string) (*teamModel.TeamDetail, error)

	// CreateTeam creates a team under an existing parent and seeds its
	// default admin and member roles.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error)

	// UpdateTeam updates name, description or parent of a team.
	UpdateTeam(ctx context.Context, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error)

	// DeleteTeam deletes a childless, non-root team with its memberships and roles.
	DeleteTeam(ctx context.Context, req *teamModel.DeleteTeamRequest) error

	// ListMembers returns the members of a team.
	ListMembers(ctx context.Context, teamID string) ([]teamModel.MemberInfo, error)

	// AddMember adds a user to a team with a role.
	AddMember(ctx context.Context, req *teamModel.AddMemberRequest) (*teamModel.TeamMember, error)

	// UpdateMemberRole changes a member's team role.
	UpdateMemberRole(ctx context.Context, req *teamModel.UpdateMemberRoleRequest) (*teamModel.TeamMember, error)

	// RemoveMember removes a user from a team.
	RemoveMember(ctx context.Context, req *teamModel.RemoveMemberRequest) error

	// ListUserTeams returns the teams a user belongs to.
	ListUserTeams(ctx context.Context, userID string) ([]teamModel.UserTeamInfo, error)
}

type service struct {
	repo     repository.Repository
	resolver *authority.Resolver
	db       *gorm.DB
	logger   *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:     repo,
		resolver: authority.New(repo),
		db:       db,
		logger:   logger,
	}
}

// ListTeams returns teams visible to the user.
func (s *service) ListTeams(ctx context.Context, userID string) ([]teamModel.TeamListItem, error) {
	all := userID == ""
	if !all {
		sysAdmin, err := s.resolver.IsSystemAdmin(ctx, userID)
		if err != nil {
			return nil, err
		}
		all = sysAdmin
	}

	var teams []teamModel.Team
	var err error
	if all {
		teams, err = s.repo.ListAll(ctx)
	} else {
		teams, err = s.visibleTeams(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return s.decorate(ctx, teams)
}

// visibleTeams returns the user's teams expanded with all descendants.
func (s *service) visibleTeams(ctx context.Context, userID string) ([]teamModel.Team, error) {
	memberTeamIDs, err := s.repo.ListUserTeamIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	visible := hierarchy.New(snapshot).Descendants(memberTeamIDs)
	ids := make([]string, 0, len(visible))
	for id := range visible {
		ids = append(ids, id)
	}

	return s.repo.ListByIDs(ctx, ids)
}

// decorate attaches parent projections and member/child counts.
func (s *service) decorate(ctx context.Context, teams []teamModel.Team) ([]teamModel.TeamListItem, error) {
	memberCounts, err := s.repo.MemberCounts(ctx)
	if err != nil {
		return nil, err
	}
	childCounts, err := s.repo.ChildCounts(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(snapshot))
	for _, t := range snapshot {
		names[t.ID] = t.Name
	}

	items := make([]teamModel.TeamListItem, 0, len(teams))
	for _, t := range teams {
		item := teamModel.TeamListItem{
			Team:        t,
			MemberCount: memberCounts[t.ID],
			ChildCount:  childCounts[t.ID],
		}
		if t.ParentID != nil {
			if name, ok := names[*t.ParentID]; ok {
				item.Parent = &teamModel.ParentInfo{ID: *t.ParentID, Name: name}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// GetTree returns the nested team forest, capped at three levels.
func (s *service) GetTree(ctx context.Context) ([]teamModel.TeamTreeNode, error) {
	teams, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]teamModel.Team)
	var roots []teamModel.Team
	for _, t := range teams {
		if t.ParentID == nil {
			roots = append(roots, t)
			continue
		}
		byParent[*t.ParentID] = append(byParent[*t.ParentID], t)
	}

	sortTeams(roots)
	for _, siblings := range byParent {
		sortTeams(siblings)
	}

	nodes := make([]teamModel.TeamTreeNode, 0, len(roots))
	for _, root := range roots {
		node := teamModel.TeamTreeNode{Team: root}
		for _, child := range byParent[root.ID] {
			childNode := teamModel.TeamTreeNode{Team: child}
			for _, grandchild := range byParent[child.ID] {
				childNode.Children = append(childNode.Children, teamModel.TeamTreeNode{Team: grandchild})
			}
			node.Children = append(node.Children, childNode)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func newRoleID() string {
	return uuid.NewString()
}

func sortTeams(teams []teamModel.Team) {
	sort.SliceStable(teams, func(a, b int) bool {
		return teams[a].Name < teams[b].Name
	})
}

// GetTeam returns a team with parent, children, members and roles.
func (s *service) GetTeam(ctx context.Context, teamID string) (*teamModel.TeamDetail, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	detail := &teamModel.TeamDetail{Team: *team}

	if team.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *team.ParentID)
		if err == nil {
			detail.Parent = &teamModel.ParentInfo{ID: parent.ID, Name: parent.Name}
		} else if !errors.Is(err, teamModel.ErrTeamNotFound) {
			return nil, err
		}
	}

	children, err := s.repo.ListChildren(ctx, teamID)
	if err != nil {
		return nil, err
	}
	detail.Children = children
	if detail.Children == nil {
		detail.Children = []teamModel.Team{}
	}

	members, err := s.repo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	detail.Members = members

	roles, err := s.repo.ListRoles(ctx, teamID)
	if err != nil {
		return nil, err
	}
	detail.Roles = make([]teamModel.RoleInfo, 0, len(roles))
	for _, role := range roles {
		detail.Roles = append(detail.Roles, teamModel.RoleInfo{
			ID:      role.ID,
			Name:    role.Name,
			Code:    role.Code,
			IsAdmin: role.IsAdmin,
		})
	}

	return detail, nil
}

// CreateTeam creates a team under an existing parent and seeds default roles.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error) {
	parentID := req.ParentID
	if parentID == "" {
		parentID = teamModel.RootTeamID
	}

	if _, err := s.repo.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return nil, teamModel.ErrParentNotFound
		}
		return nil, err
	}

	allowed, err := s.resolver.CanManage(ctx, req.OperatorID, parentID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, teamModel.ErrPermissionDenied
	}

	var created *teamModel.Team
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		team, err := txRepo.Create(ctx, req.Name, req.Description, &parentID)
		if err != nil {
			return err
		}

		defaults := []roleModel.TeamRole{
			{TeamID: team.ID, Name: defaultAdminRoleName, Code: defaultAdminRoleCode, IsAdmin: true},
			{TeamID: team.ID, Name: defaultMemberRoleName, Code: defaultMemberRoleCode, IsAdmin: false},
		}
		for i := range defaults {
			defaults[i].ID = newRoleID()
			if err := txRepo.CreateRole(ctx, &defaults[i]); err != nil {
				return err
			}
		}

		created = team
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team created", "team_id", created.ID, "parent_id", parentID, "operator_id", req.OperatorID)
	return created, nil
}

// UpdateTeam updates name, description or parent of a team.
func (s *service) UpdateTeam(ctx context.Context, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error) {
	team, err := s.repo.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.ParentID != nil {
		if err := s.applyParentChange(ctx, team, *req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// applyParentChange validates a reparenting request. Empty string moves
// the team to the forest root. The full ancestor chain is checked so the
// stored parent relation stays acyclic.
func (s *service) applyParentChange(ctx context.Context, team *teamModel.Team, newParent string) error {
	if newParent == "" {
		team.ParentID = nil
		return nil
	}
	if newParent == team.ID {
		return teamModel.ErrSelfParent
	}

	if _, err := s.repo.GetByID(ctx, newParent); err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return teamModel.ErrParentNotFound
		}
		return err
	}

	snapshot, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if hierarchy.New(snapshot).IsAncestor(team.ID, newParent) {
		return teamModel.ErrCyclicParent
	}

	team.ParentID = &newParent
	return nil
}

// DeleteTeam deletes a childless, non-root team with its memberships and roles.
func (s *service) DeleteTeam(ctx context.Context, req *teamModel.DeleteTeamRequest) error {
	if req.TeamID == teamModel.RootTeamID {
		return teamModel.ErrRootTeamProtected
	}

	if _, err := s.repo.GetByID(ctx, req.TeamID); err != nil {
		return err
	}

	childCount, err := s.repo.CountChildren(ctx, req.TeamID)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return teamModel.ErrTeamHasChildren
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if err := txRepo.DeleteTeamAssociations(ctx, req.TeamID); err != nil {
			return err
		}
		return txRepo.Delete(ctx, req.TeamID)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("team deleted", "team_id", req.TeamID)
	return nil
}

// ListMembers returns the members of a team.
func (s *service) ListMembers(ctx context.Context, teamID string) ([]teamModel.MemberInfo, error) {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, teamID)
}

// AddMember adds a user to a team with a role.
func (s *service) AddMember(ctx context.Context, req *teamModel.AddMemberRequest) (*teamModel.TeamMember, error) {
	if _, err := s.repo.GetByID(ctx, req.TeamID); err != nil {
		return nil, err
	}

	allowed, err := s.resolver.CanManage(ctx, req.OperatorID, req.TeamID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, teamModel.ErrPermissionDenied
	}

	role, err := s.repo.GetRoleByID(ctx, req.TeamRoleID)
	if err != nil {
		return nil, err
	}
	if role.TeamID != req.TeamID {
		return nil, teamModel.ErrRoleNotFound
	}

	if _, err := s.repo.GetMember(ctx, req.UserID, req.TeamID); err == nil {
		return nil, teamModel.ErrAlreadyMember
	} else if !errors.Is(err, teamModel.ErrMemberNotFound) {
		return nil, err
	}

	member := &teamModel.TeamMember{
		UserID:     req.UserID,
		TeamID:     req.TeamID,
		TeamRoleID: req.TeamRoleID,
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Infow("member added", "team_id", req.TeamID, "user_id", req.UserID, "operator_id", req.OperatorID)
	return member, nil
}

// UpdateMemberRole changes a member's team role. A member whose current
// role carries the admin flag cannot be reassigned, regardless of who
// the operator is.
func (s *service) UpdateMemberRole(ctx context.Context, req *teamModel.UpdateMemberRoleRequest) (*teamModel.TeamMember, error) {
	allowed, err := s.resolver.CanManage(ctx, req.OperatorID, req.TeamID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, teamModel.ErrPermissionDenied
	}

	member, err := s.repo.GetMember(ctx, req.UserID, req.TeamID)
	if err != nil {
		return nil, err
	}

	currentRole, err := s.repo.GetRoleByID(ctx, member.TeamRoleID)
	if err != nil {
		return nil, err
	}
	if currentRole.IsAdmin {
		return nil, teamModel.ErrAdminRoleProtected
	}

	newRole, err := s.repo.GetRoleByID(ctx, req.TeamRoleID)
	if err != nil {
		return nil, err
	}
	if newRole.TeamID != req.TeamID {
		return nil, teamModel.ErrRoleNotFound
	}

	if err := s.repo.UpdateMemberRole(ctx, req.UserID, req.TeamID, req.TeamRoleID); err != nil {
		return nil, err
	}

	member.TeamRoleID = req.TeamRoleID
	return member, nil
}

// RemoveMember removes a user from a team.
func (s *service) RemoveMember(ctx context.Context, req *teamModel.RemoveMemberRequest) error {
	allowed, err := s.resolver.CanManage(ctx, req.OperatorID, req.TeamID)
	if err != nil {
		return err
	}
	if !allowed {
		return teamModel.ErrPermissionDenied
	}

	if _, err := s.repo.GetMember(ctx, req.UserID, req.TeamID); err != nil {
		return err
	}

	if err := s.repo.RemoveMember(ctx, req.UserID, req.TeamID); err != nil {
		return err
	}

	s.logger.Infow("member removed", "team_id", req.TeamID, "user_id", req.UserID, "operator_id", req.OperatorID)
	return nil
}

// ListUserTeams returns the teams a user belongs to.
func (s *service) ListUserTeams(ctx context.Context, userID string) ([]teamModel.UserTeamInfo, error) {
	return s.repo.ListUserTeams(ctx, userID)
}
