// Package handler provides HTTP handlers for role endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	roleModel "github.com/savelyev-an/admin-console/internal/role/model"
	"github.com/savelyev-an/admin-console/internal/role/service"
)

// Handler handles HTTP requests for role endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new role handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListRoles handles GET /role/list requests.
func (h *Handler) ListRoles(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		errorResponse(c, "INVALID_REQUEST", "team_id parameter is required", http.StatusBadRequest)
		return
	}

	roles, err := h.service.ListRoles(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, roleModel.ErrTeamNotFound) {
			errorResponse(c, "NOT_FOUND", "team not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error listing roles", "team_id", teamID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"roles": roles})
}

// CreateRole handles POST /role/create requests.
func (h *Handler) CreateRole(c *gin.Context) {
	var req roleModel.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	role, err := h.service.CreateRole(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, roleModel.ErrTeamNotFound):
			errorResponse(c, "NOT_FOUND", "team not found", http.StatusNotFound)
		case errors.Is(err, roleModel.ErrInvalidRoleName):
			errorResponse(c, "INVALID_REQUEST", roleModel.ErrInvalidRoleName.Error(), http.StatusBadRequest)
		case errors.Is(err, roleModel.ErrRoleNameExists):
			errorResponse(c, "ROLE_NAME_EXISTS", roleModel.ErrRoleNameExists.Error(), http.StatusConflict)
		case errors.Is(err, roleModel.ErrRoleCodeExists):
			errorResponse(c, "ROLE_CODE_EXISTS", roleModel.ErrRoleCodeExists.Error(), http.StatusConflict)
		default:
			h.logger.Errorw("error creating role", "team_id", req.TeamID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{"role": role})
}

// UpdateRole handles POST /role/update requests.
func (h *Handler) UpdateRole(c *gin.Context) {
	var req roleModel.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	role, err := h.service.UpdateRole(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, roleModel.ErrRoleNotFound):
			errorResponse(c, "NOT_FOUND", "team role not found", http.StatusNotFound)
		case errors.Is(err, roleModel.ErrInvalidRoleName):
			errorResponse(c, "INVALID_REQUEST", roleModel.ErrInvalidRoleName.Error(), http.StatusBadRequest)
		case errors.Is(err, roleModel.ErrRoleNameExists):
			errorResponse(c, "ROLE_NAME_EXISTS", roleModel.ErrRoleNameExists.Error(), http.StatusConflict)
		case errors.Is(err, roleModel.ErrRoleCodeExists):
			errorResponse(c, "ROLE_CODE_EXISTS", roleModel.ErrRoleCodeExists.Error(), http.StatusConflict)
		default:
			h.logger.Errorw("error updating role", "role_id", req.RoleID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"role": role})
}

// DeleteRole handles POST /role/delete requests.
func (h *Handler) DeleteRole(c *gin.Context) {
	var req roleModel.DeleteRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteRole(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, roleModel.ErrRoleNotFound):
			errorResponse(c, "NOT_FOUND", "team role not found", http.StatusNotFound)
		case errors.Is(err, roleModel.ErrRoleInUse):
			errorResponse(c, "ROLE_IN_USE", roleModel.ErrRoleInUse.Error(), http.StatusConflict)
		default:
			h.logger.Errorw("error deleting role", "role_id", req.RoleID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// GetRoleMenus handles GET /role/menus requests.
func (h *Handler) GetRoleMenus(c *gin.Context) {
	roleID := c.Query("role_id")
	if roleID == "" {
		errorResponse(c, "INVALID_REQUEST", "role_id parameter is required", http.StatusBadRequest)
		return
	}

	menuIDs, err := h.service.GetRoleMenus(c.Request.Context(), roleID)
	if err != nil {
		if errors.Is(err, roleModel.ErrRoleNotFound) {
			errorResponse(c, "NOT_FOUND", "team role not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error getting role menus", "role_id", roleID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"menu_ids": menuIDs})
}

// UpdateRoleMenus handles POST /role/menus requests.
func (h *Handler) UpdateRoleMenus(c *gin.Context) {
	var req roleModel.UpdateRoleMenusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateRoleMenus(c.Request.Context(), &req); err != nil {
		if errors.Is(err, roleModel.ErrRoleNotFound) {
			errorResponse(c, "NOT_FOUND", "team role not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error updating role menus", "role_id", req.RoleID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// errorResponse writes the error envelope shared by all modules.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
