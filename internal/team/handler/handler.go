// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	teamModel "github.com/savelyev-an/admin-console/internal/team/model"
	"github.com/savelyev-an/admin-console/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListTeams handles GET /team/list requests. The optional user_id query
// parameter scopes the listing to the caller's visible teams.
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		h.logger.Errorw("error listing teams", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetTree handles GET /team/tree requests.
func (h *Handler) GetTree(c *gin.Context) {
	nodes, err := h.service.GetTree(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error building team tree", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"teams": nodes})
}

// GetTeam handles GET /team/get requests.
func (h *Handler) GetTeam(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		errorResponse(c, "INVALID_REQUEST", "team_id parameter is required", http.StatusBadRequest)
		return
	}

	detail, err := h.service.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error getting team", "team_id", teamID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateTeam handles POST /team/create requests.
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrParentNotFound):
			notFoundResponse(c, "parent team not found")
		case errors.Is(err, teamModel.ErrPermissionDenied):
			permissionDeniedResponse(c, "only team administrators may create child teams")
		default:
			h.logger.Errorw("error creating team", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{"team": team})
}

// UpdateTeam handles POST /team/update requests.
func (h *Handler) UpdateTeam(c *gin.Context) {
	var req teamModel.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.service.UpdateTeam(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamNotFound):
			notFoundResponse(c, "team not found")
		case errors.Is(err, teamModel.ErrParentNotFound):
			notFoundResponse(c, "parent team not found")
		case errors.Is(err, teamModel.ErrSelfParent):
			errorResponse(c, "SELF_PARENT", "team cannot be its own parent", http.StatusConflict)
		case errors.Is(err, teamModel.ErrCyclicParent):
			errorResponse(c, "CYCLIC_PARENT", "parent change would create a cycle", http.StatusConflict)
		default:
			h.logger.Errorw("error updating team", "team_id", req.TeamID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"team": team})
}

// DeleteTeam handles POST /team/delete requests.
func (h *Handler) DeleteTeam(c *gin.Context) {
	var req teamModel.DeleteTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTeam(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamNotFound):
			notFoundResponse(c, "team not found")
		case errors.Is(err, teamModel.ErrRootTeamProtected):
			errorResponse(c, "ROOT_TEAM_PROTECTED", "the system administration team cannot be deleted", http.StatusConflict)
		case errors.Is(err, teamModel.ErrTeamHasChildren):
			errorResponse(c, "TEAM_HAS_CHILDREN", "delete child teams first", http.StatusConflict)
		default:
			h.logger.Errorw("error deleting team", "team_id", req.TeamID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// ListMembers handles GET /team/members requests.
func (h *Handler) ListMembers(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		errorResponse(c, "INVALID_REQUEST", "team_id parameter is required", http.StatusBadRequest)
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error listing members", "team_id", teamID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"members": members})
}

// AddMember handles POST /team/member/add requests.
func (h *Handler) AddMember(c *gin.Context) {
	var req teamModel.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.service.AddMember(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamNotFound):
			notFoundResponse(c, "team not found")
		case errors.Is(err, teamModel.ErrRoleNotFound):
			notFoundResponse(c, "team role not found in this team")
		case errors.Is(err, teamModel.ErrPermissionDenied):
			permissionDeniedResponse(c, "only team administrators may add members")
		case errors.Is(err, teamModel.ErrAlreadyMember):
			errorResponse(c, "ALREADY_MEMBER", "user is already a team member", http.StatusConflict)
		default:
			h.logger.Errorw("error adding member", "team_id", req.TeamID, "user_id", req.UserID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{"member": member})
}

// UpdateMemberRole handles POST /team/member/role requests.
func (h *Handler) UpdateMemberRole(c *gin.Context) {
	var req teamModel.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.service.UpdateMemberRole(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrMemberNotFound):
			notFoundResponse(c, "team member not found")
		case errors.Is(err, teamModel.ErrRoleNotFound):
			notFoundResponse(c, "team role not found in this team")
		case errors.Is(err, teamModel.ErrPermissionDenied):
			permissionDeniedResponse(c, "only team administrators may change member roles")
		case errors.Is(err, teamModel.ErrAdminRoleProtected):
			errorResponse(c, "ADMIN_ROLE_PROTECTED", "cannot change the role of a team administrator", http.StatusConflict)
		default:
			h.logger.Errorw("error updating member role", "team_id", req.TeamID, "user_id", req.UserID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"member": member})
}

// RemoveMember handles POST /team/member/remove requests.
func (h *Handler) RemoveMember(c *gin.Context) {
	var req teamModel.RemoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, teamModel.ErrMemberNotFound):
			notFoundResponse(c, "team member not found")
		case errors.Is(err, teamModel.ErrPermissionDenied):
			permissionDeniedResponse(c, "only team administrators may remove members")
		default:
			h.logger.Errorw("error removing member", "team_id", req.TeamID, "user_id", req.UserID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// ListUserTeams handles GET /team/user-teams requests.
func (h *Handler) ListUserTeams(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		errorResponse(c, "INVALID_REQUEST", "user_id parameter is required", http.StatusBadRequest)
		return
	}

	teams, err := h.service.ListUserTeams(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("error listing user teams", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"teams": teams})
}
