package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-choose-api/internal/core/server"
	mdw "course-choose-api/internal/transport/http/middleware"
)

// Options 两个引擎共用的装配参数
type Options struct {
	Log         *zap.Logger
	Tokens      mdw.TokenVerifier
	Limits      mdw.Limits
	CORSOrigins []string
}

func newEngine(engine string, o Options) *gin.Engine {
	r := server.NewRouter(o.Log, o.CORSOrigins)
	r.Use(mdw.RequestID(), mdw.AccessLog(o.Log), mdw.Metrics(engine))
	r.Use(o.Limits.Handlers()...)
	r.Use(mdw.AuthJWT(o.Tokens, o.Log))

	r.GET("/health", health)
	r.GET("/metrics", mdw.MetricsHandler())
	return r
}

func health(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) }

// NewAPIEngine 用户端：/user、/course、/choose 直接挂在根路径
func NewAPIEngine(o Options, reg *Registry) (*gin.Engine, error) {
	r := newEngine("api", o)
	if err := reg.MountAPI(&r.RouterGroup); err != nil {
		return nil, err
	}
	return r, nil
}
