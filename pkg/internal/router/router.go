// Package router 管理路由配置，把 handle 包中的处理器绑定到 gin 引擎.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/storage"
	"github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/metrics"
	"github.com/yeisme/folio/pkg/middleware"
	"github.com/yeisme/folio/pkg/scheduler"
)

// Setup 安装全局中间件并注册全部路由.
// 会话网关挂在引擎上，未匹配的 /admin 页面同样会被重定向到登录页.
func Setup(e *gin.Engine, cfg *configs.AppConfig, mgr *storage.Manager, sched *scheduler.Scheduler) *gin.Engine {
	if err := e.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.With("router").Warn().Err(err).Msg("invalid trusted proxies, forwarded headers ignored")
		_ = e.SetTrustedProxies(nil)
	}

	e.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.CORSMiddleware(cfg.Server),
		middleware.RateLimitMiddleware(cfg.RateLimit),
		middleware.SessionMiddleware(cfg.Admin),
		middleware.ContextMiddleware(mgr, sched),
	)

	RegisterPublicRoutes(e, cfg)
	RegisterAdminRoutes(e.Group("/api/admin"), cfg)

	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	return e
}
