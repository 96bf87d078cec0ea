package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "course-choose-api/internal/transport/http/response"
)

// Limits 请求保护的三道闸，字段为 0 的那道不装
type Limits struct {
	MaxInFlight    int64
	MaxBodyBytes   int64
	HandlerTimeout time.Duration
}

func (l Limits) Handlers() []gin.HandlerFunc {
	var hs []gin.HandlerFunc
	if l.MaxInFlight > 0 {
		hs = append(hs, ConcurrencyLimit(l.MaxInFlight))
	}
	if l.MaxBodyBytes > 0 {
		hs = append(hs, MaxBodyBytes(l.MaxBodyBytes))
	}
	if l.HandlerTimeout > 0 {
		hs = append(hs, Timeout(l.HandlerTimeout))
	}
	return hs
}

// ConcurrencyLimit 超过上限的请求排队，直到客户端放弃
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			resp.Abort(c, resp.CodeUnavailable, "server busy")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}

// MaxBodyBytes 超限时绑定拿到 *http.MaxBytesError，由 ez 映射成 413
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// Timeout 给请求上下文挂截止时间；handler 没写响应就补 504
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			resp.Abort(c, resp.CodeGatewayTimeout, "timeout")
		}
	}
}
