package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-choose-api/internal/domain"
	"course-choose-api/internal/service"
	"course-choose-api/internal/transport/http/ez"
	mdw "course-choose-api/internal/transport/http/middleware"
)

type UserHandler struct{ svc *service.UserService }

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Priority() int { return 10 }

type userPatchIn struct {
	ez.IDParam
	domain.UserPatch
}

func (h *UserHandler) MountAPI(g *gin.RouterGroup) error {
	e := ez.New(g)

	// 令牌无效时按匿名处理，由 service 返回 401
	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/user/session",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.svc.GetSession(c, mdw.CurrentUser(c), mdw.AuthError(c))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.SignInInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/user/session",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.SignInInput) (*domain.User, error) {
			return h.svc.SignIn(c, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.SignUpInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/user",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.SignUpInput) (*domain.User, error) {
			return h.svc.SignUp(c, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[userPatchIn, *domain.User]{
		Method: http.MethodPut,
		Path:   "/user/:id",
		Binder: ez.BindURI | ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *userPatchIn) (*domain.User, error) {
			return h.svc.Update(c, mdw.CurrentUser(c), in.ID, in.UserPatch)
		},
	})

	ez.RegisterAction(e, ez.Action[ez.IDParam, *domain.User]{
		Method: http.MethodGet,
		Path:   "/user/:id",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *ez.IDParam) (*domain.User, error) {
			return h.svc.GetOne(c, in.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[ez.IDParam, struct{}]{
		Method: http.MethodDelete,
		Path:   "/user/:id",
		Binder: ez.BindURI,
		Auth:   true,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, in *ez.IDParam) (struct{}, error) {
			return struct{}{}, h.svc.Delete(c, mdw.CurrentUser(c), in.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.UserFilter, *domain.UserListChunk]{
		Method: http.MethodGet,
		Path:   "/user",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *domain.UserFilter) (*domain.UserListChunk, error) {
			in.WithDeleted = false
			return h.svc.List(c, *in)
		},
	})
	return nil
}
