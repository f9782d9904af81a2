// Package router provides role module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/savelyev-an/admin-console/internal/role/handler"
	"github.com/savelyev-an/admin-console/internal/role/repository"
	"github.com/savelyev-an/admin-console/internal/role/service"
)

// RegisterRoutes registers role module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.GET("/role/list", h.ListRoles)
	r.POST("/role/create", h.CreateRole)
	r.POST("/role/update", h.UpdateRole)
	r.POST("/role/delete", h.DeleteRole)
	r.GET("/role/menus", h.GetRoleMenus)
	r.POST("/role/menus", h.UpdateRoleMenus)
}
