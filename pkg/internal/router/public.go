package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/handle"
	"github.com/yeisme/folio/pkg/middleware"
)

// RegisterPublicRoutes 注册站点前台使用的公开路由.
func RegisterPublicRoutes(e *gin.Engine, cfg *configs.AppConfig) {
	v1 := e.Group("/api/v1", gzip.Gzip(gzip.DefaultCompression))
	{
		v1.GET("/galleries", handle.GalleryNames)
		v1.GET("/galleries/:name", handle.GalleryImages)
		v1.GET("/nav", handle.Nav)

		v1.GET("/health", handle.Health)
		v1.GET("/health/kv", handle.HealthKV)
		v1.GET("/health/mq", handle.HealthMQ)
	}

	e.POST("/api/contact", middleware.RuleLimitMiddleware(cfg.RateLimit.Contact), handle.ContactSubmit)

	e.GET("/sitemap.xml", handle.Sitemap)
	e.GET("/robots.txt", handle.Robots)
}
