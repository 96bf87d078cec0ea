package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-choose-api/internal/domain"
	resp "course-choose-api/internal/transport/http/response"
)

const (
	keyCurrentUser = "currentUser"
	keyAuthError   = "authError"
)

type TokenVerifier interface {
	Verify(token string) (*domain.User, error)
}

// AuthJWT 解析 Bearer 令牌并把身份挂到上下文。没有或无效的令牌不拦截，
// 是否要求登录由具体路由决定；无效令牌只记录日志。
func AuthJWT(v TokenVerifier, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.Next()
			return
		}
		u, err := v.Verify(strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		if err != nil {
			l.Warn("invalid token", zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
			authRejected.WithLabelValues("invalid_token").Inc()
			c.Set(keyAuthError, err)
		} else {
			c.Set(keyCurrentUser, u)
		}
		c.Next()
	}
}

// RequireRoles 未登录 401，角色不满足（任一即可）403
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			authRejected.WithLabelValues("unauthenticated").Inc()
			resp.Abort(c, resp.CodeUnauthorized, domain.ErrUnauthenticated.Error())
			return
		}
		if !hasAnyRole(u, roles) {
			authRejected.WithLabelValues("missing_role").Inc()
			resp.Abort(c, resp.CodeForbidden, domain.ErrForbidden.Error())
			return
		}
		c.Next()
	}
}

func hasAnyRole(u *domain.User, roles []domain.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if u.Roles.Has(r) {
			return true
		}
	}
	return false
}

func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(keyCurrentUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// AuthError 令牌校验失败的原因，没有令牌或校验通过时为 nil
func AuthError(c *gin.Context) error {
	if v, ok := c.Get(keyAuthError); ok {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}
