// Package router provides menu module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/savelyev-an/admin-console/internal/menu/handler"
	"github.com/savelyev-an/admin-console/internal/menu/repository"
	"github.com/savelyev-an/admin-console/internal/menu/service"
)

// RegisterRoutes registers menu module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.GET("/menu/tree", h.GetTree)
	r.GET("/menu/user", h.GetUserMenus)
	r.GET("/menu/fallback", h.GetFallback)
	r.POST("/menu/fallback", h.UpdateFallback)
}
