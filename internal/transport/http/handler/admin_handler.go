package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-choose-api/internal/domain"
	"course-choose-api/internal/service"
	"course-choose-api/internal/transport/http/ez"
)

// AdminHandler 管理端接口，分组上已要求 Administrator
type AdminHandler struct {
	users *service.UserService
	logs  *service.ActivityLogService
}

func NewAdminHandler(users *service.UserService, logs *service.ActivityLogService) *AdminHandler {
	return &AdminHandler{users: users, logs: logs}
}

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) error {
	e := ez.New(g)

	// 包含已软删的用户
	ez.RegisterAction(e, ez.Action[domain.UserFilter, *domain.UserListChunk]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.UserFilter) (*domain.UserListChunk, error) {
			in.WithDeleted = true
			return h.users.List(c, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.ActivityLogFilter, *domain.ActivityLogChunk]{
		Method: http.MethodGet,
		Path:   "/activity-logs",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.ActivityLogFilter) (*domain.ActivityLogChunk, error) {
			return h.logs.List(c, *in)
		},
	})
	return nil
}
