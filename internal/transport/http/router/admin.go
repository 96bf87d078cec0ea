package router

import (
	"github.com/gin-gonic/gin"

	"course-choose-api/internal/domain"
	mdw "course-choose-api/internal/transport/http/middleware"
)

func NewAdminEngine(o Options, reg *Registry) (*gin.Engine, error) {
	r := newEngine("admin", o)

	// 管理端 v1 统一要求 Administrator
	admin := r.Group("/admin/v1")
	admin.Use(mdw.RequireRoles(domain.RoleAdministrator))

	if err := reg.MountAdmin(admin); err != nil {
		return nil, err
	}
	return r, nil
}
