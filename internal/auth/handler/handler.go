// Package handler provides HTTP handlers for auth endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authModel "github.com/savelyev-an/admin-console/internal/auth/model"
	"github.com/savelyev-an/admin-console/internal/auth/service"
	userModel "github.com/savelyev-an/admin-console/internal/user/model"
	"github.com/savelyev-an/admin-console/pkg/validation"
)

// Handler handles HTTP requests for auth endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new auth handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /auth/register requests.
func (h *Handler) Register(c *gin.Context) {
	var req authModel.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case validation.IsValidationError(err):
			errorResponse(c, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		case errors.Is(err, userModel.ErrEmailExists):
			errorResponse(c, "EMAIL_EXISTS", userModel.ErrEmailExists.Error(), http.StatusConflict)
		default:
			h.logger.Errorw("error registering user", "email", req.Email, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login requests.
func (h *Handler) Login(c *gin.Context) {
	var req authModel.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case validation.IsValidationError(err):
			errorResponse(c, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		case errors.Is(err, authModel.ErrInvalidCredentials):
			errorResponse(c, "INVALID_CREDENTIALS", authModel.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		case errors.Is(err, authModel.ErrUserInactive):
			errorResponse(c, "USER_INACTIVE", authModel.ErrUserInactive.Error(), http.StatusForbidden)
		default:
			h.logger.Errorw("error logging in", "email", req.Email, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh requests.
func (h *Handler) Refresh(c *gin.Context) {
	var req authModel.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authModel.ErrInvalidToken):
			errorResponse(c, "INVALID_TOKEN", authModel.ErrInvalidToken.Error(), http.StatusUnauthorized)
		case errors.Is(err, authModel.ErrUserInactive):
			errorResponse(c, "USER_INACTIVE", authModel.ErrUserInactive.Error(), http.StatusForbidden)
		default:
			h.logger.Errorw("error refreshing tokens", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, pair)
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
