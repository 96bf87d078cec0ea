package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"course-choose-api/internal/domain"
	mdw "course-choose-api/internal/transport/http/middleware"
	resp "course-choose-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Binder 入参来源，可以组合：BindURI|BindJSON
type Binder uint8

const (
	BindJSON Binder = 1 << iota
	BindQuery
	BindURI

	BindNone Binder = 0
)

// AErr 显式指定状态码的错误
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// IDParam 路径里的 :id
type IDParam struct {
	ID uint `uri:"id" json:"-" binding:"required"`
}

// Action 非 CRUD 接口：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Auth    bool // 要求已登录；角色限制在分组上用 middleware.RequireRoles
	Status  int  // 成功状态码，默认 200；204 不写 body
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		if a.Auth && mdw.CurrentUser(c) == nil {
			Fail(c, domain.ErrUnauthenticated)
			return
		}

		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			failBind(c, err)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		resp.Success(c, status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// bind URI 先于 JSON，保证 binding:"required" 校验时路径参数已就位
func bind(c *gin.Context, b Binder, in any) error {
	if b&BindURI != 0 {
		if err := c.ShouldBindUri(in); err != nil {
			return err
		}
	}
	if b&BindJSON != 0 {
		if err := c.ShouldBindJSON(in); err != nil {
			return err
		}
	}
	if b&BindQuery != 0 {
		if err := c.ShouldBindQuery(in); err != nil {
			return err
		}
	}
	return nil
}

func failBind(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	if status, msg := statusOf(err); status != http.StatusInternalServerError {
		resp.Abort(c, status, msg)
		return
	}
	resp.Abort(c, http.StatusBadRequest, err.Error())
}

// Fail 统一的错误出口
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status, msg := statusOf(err)
	resp.Abort(c, status, msg)
}

// statusOf 错误到 HTTP 状态码的唯一映射点
func statusOf(err error) (int, string) {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae.Code, ae.Error()
	}
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, context.DeadlineExceeded):
		// 下游在 Timeout 中间件的截止时间上放弃，和中间件一样回 504
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusForbidden, domain.ErrAuthentication.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrNotFound.Error()
	default:
		return http.StatusInternalServerError, resp.CodeMsgMap[resp.CodeServerError]
	}
}
