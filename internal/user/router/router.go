// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/savelyev-an/admin-console/internal/user/handler"
	"github.com/savelyev-an/admin-console/internal/user/repository"
	"github.com/savelyev-an/admin-console/internal/user/service"
)

// RegisterRoutes registers user module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.GET("/user/list", h.ListUsers)
	r.GET("/user/get", h.GetUser)
	r.GET("/user/stats", h.GetStats)
	r.POST("/user/create", h.CreateUser)
	r.POST("/user/update", h.UpdateUser)
	r.POST("/user/delete", h.DeleteUser)
	r.POST("/user/role/grant", h.GrantSystemRole)
	r.POST("/user/role/revoke", h.RevokeSystemRole)
}
