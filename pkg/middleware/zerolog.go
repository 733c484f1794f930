package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	ctxPkg "github.com/yeisme/folio/pkg/context"
	"github.com/yeisme/folio/pkg/log"
)

// accessLevel 5xx 为 error，4xx 为 warn，健康检查为 debug.
func accessLevel(status int, route string) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	case strings.HasPrefix(route, "/api/v1/health"):
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// GinLoggerMiddleware 每个请求一条访问日志，带 trace 字段.
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		req := c.Request
		path := req.URL.Path
		if req.URL.RawQuery != "" {
			path += "?" + req.URL.RawQuery
		}

		status := c.Writer.Status()
		logger := ctxPkg.WithTraceContext(req.Context(), *log.With("http"))

		event := logger.WithLevel(accessLevel(status, c.FullPath())).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("method", req.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP())

		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.Msg("HTTP request")
	}
}
