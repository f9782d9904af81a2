// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/savelyev-an/admin-console/internal/team/handler"
	"github.com/savelyev-an/admin-console/internal/team/repository"
	"github.com/savelyev-an/admin-console/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.GET("/team/list", h.ListTeams)
	r.GET("/team/tree", h.GetTree)
	r.GET("/team/get", h.GetTeam)
	r.POST("/team/create", h.CreateTeam)
	r.POST("/team/update", h.UpdateTeam)
	r.POST("/team/delete", h.DeleteTeam)
	r.GET("/team/members", h.ListMembers)
	r.POST("/team/member/add", h.AddMember)
	r.POST("/team/member/role", h.UpdateMemberRole)
	r.POST("/team/member/remove", h.RemoveMember)
	r.GET("/team/user-teams", h.ListUserTeams)
}
