// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	userModel "github.com/savelyev-an/admin-console/internal/user/model"
	"github.com/savelyev-an/admin-console/internal/user/service"
	"github.com/savelyev-an/admin-console/pkg/validation"
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListUsers handles GET /user/list requests.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing users", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

// GetUser handles GET /user/get requests.
func (h *Handler) GetUser(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		errorResponse(c, "INVALID_REQUEST", "user_id parameter is required", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error getting user", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// GetStats handles GET /user/stats requests.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting user stats", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CreateUser handles POST /user/create requests.
func (h *Handler) CreateUser(c *gin.Context) {
	var req userModel.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		switch {
		case validation.IsValidationError(err):
			errorResponse(c, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		case errors.Is(err, userModel.ErrEmailExists):
			errorResponse(c, "EMAIL_EXISTS", userModel.ErrEmailExists.Error(), http.StatusConflict)
		default:
			h.logger.Errorw("error creating user", "email", req.Email, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{"user": user})
}

// UpdateUser handles POST /user/update requests.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req userModel.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, userModel.ErrUserNotFound):
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
		case errors.Is(err, userModel.ErrEmailExists):
			errorResponse(c, "EMAIL_EXISTS", userModel.ErrEmailExists.Error(), http.StatusConflict)
		case errors.Is(err, userModel.ErrInvalidStatus):
			errorResponse(c, "INVALID_REQUEST", userModel.ErrInvalidStatus.Error(), http.StatusBadRequest)
		default:
			h.logger.Errorw("error updating user", "user_id", req.UserID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// DeleteUser handles POST /user/delete requests.
func (h *Handler) DeleteUser(c *gin.Context) {
	var req userModel.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), &req); err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error deleting user", "user_id", req.UserID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// GrantSystemRole handles POST /user/role/grant requests.
func (h *Handler) GrantSystemRole(c *gin.Context) {
	var req userModel.SystemRoleGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.GrantSystemRole(c.Request.Context(), &req); err != nil {
		h.writeGrantError(c, &req, err, "error granting system role")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// RevokeSystemRole handles POST /user/role/revoke requests.
func (h *Handler) RevokeSystemRole(c *gin.Context) {
	var req userModel.SystemRoleGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RevokeSystemRole(c.Request.Context(), &req); err != nil {
		h.writeGrantError(c, &req, err, "error revoking system role")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) writeGrantError(c *gin.Context, req *userModel.SystemRoleGrantRequest, err error, logMsg string) {
	switch {
	case errors.Is(err, userModel.ErrInvalidSystemRole):
		errorResponse(c, "INVALID_REQUEST", userModel.ErrInvalidSystemRole.Error(), http.StatusBadRequest)
	case errors.Is(err, userModel.ErrPermissionDenied):
		errorResponse(c, "PERMISSION_DENIED", userModel.ErrPermissionDenied.Error(), http.StatusForbidden)
	case errors.Is(err, userModel.ErrUserNotFound):
		errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
	case errors.Is(err, userModel.ErrRoleAlreadyGranted):
		errorResponse(c, "ROLE_ALREADY_GRANTED", userModel.ErrRoleAlreadyGranted.Error(), http.StatusConflict)
	case errors.Is(err, userModel.ErrRoleNotGranted):
		errorResponse(c, "ROLE_NOT_GRANTED", userModel.ErrRoleNotGranted.Error(), http.StatusConflict)
	default:
		h.logger.Errorw(logMsg, "user_id", req.UserID, "role", req.Role, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
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
