// Package router provides auth module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/savelyev-an/admin-console/internal/auth/handler"
	"github.com/savelyev-an/admin-console/internal/auth/service"
	userRepository "github.com/savelyev-an/admin-console/internal/user/repository"
	userService "github.com/savelyev-an/admin-console/internal/user/service"
	"github.com/savelyev-an/admin-console/pkg/token"
)

// RegisterRoutes registers auth module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, tokens *token.Manager, logger *zap.SugaredLogger) {
	repo := userRepository.New(db, logger)
	users := userService.New(repo, db, logger)
	svc := service.New(users, repo, tokens, logger)
	h := handler.New(svc, logger)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
}
