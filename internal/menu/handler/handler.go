// Package handler provides HTTP handlers for menu endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	menuModel "github.com/savelyev-an/admin-console/internal/menu/model"
	"github.com/savelyev-an/admin-console/internal/menu/service"
)

// Handler handles HTTP requests for menu endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new menu handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetTree handles GET /menu/tree requests.
func (h *Handler) GetTree(c *gin.Context) {
	menus, err := h.service.GetTree(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error building menu tree", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"menus": menus})
}

// GetUserMenus handles GET /menu/user requests. team_id is optional;
// without it the resolution uses the USER fallback set only.
func (h *Handler) GetUserMenus(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		errorResponse(c, "INVALID_REQUEST", "user_id parameter is required", http.StatusBadRequest)
		return
	}
	teamID := c.Query("team_id")

	menus, err := h.service.ResolveUserMenus(c.Request.Context(), userID, teamID)
	if err != nil {
		if errors.Is(err, menuModel.ErrUserNotFound) {
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error resolving user menus", "user_id", userID, "team_id", teamID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"menus": menus})
}

// GetFallback handles GET /menu/fallback requests.
func (h *Handler) GetFallback(c *gin.Context) {
	menuIDs, err := h.service.GetFallbackMenuIDs(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting fallback menus", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"menu_ids": menuIDs})
}

// UpdateFallback handles POST /menu/fallback requests.
func (h *Handler) UpdateFallback(c *gin.Context) {
	var req menuModel.UpdateFallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateFallbackMenus(c.Request.Context(), &req); err != nil {
		if errors.Is(err, menuModel.ErrPermissionDenied) {
			errorResponse(c, "PERMISSION_DENIED", menuModel.ErrPermissionDenied.Error(), http.StatusForbidden)
			return
		}
		h.logger.Errorw("error updating fallback menus", "operator_id", req.OperatorID, "error", err)
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
