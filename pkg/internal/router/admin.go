package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/handle"
	"github.com/yeisme/folio/pkg/middleware"
)

// RegisterAdminRoutes 注册 /api/admin 路由，鉴权由全局会话中间件负责.
func RegisterAdminRoutes(g *gin.RouterGroup, cfg *configs.AppConfig) {
	auth := g.Group("/auth")
	{
		auth.POST("", middleware.RuleLimitMiddleware(cfg.RateLimit.Login), handle.Login)
		auth.DELETE("", handle.Logout)
	}

	g.GET("/gallery", handle.AdminListGallery)
	g.DELETE("/gallery", handle.AdminDeleteImage)

	g.GET("/featured", handle.AdminFeaturedList)
	g.POST("/featured", handle.AdminFeaturedUpdate)

	panel := g.Group("/panel")
	{
		panel.GET("", handle.AdminPanelGalleries)
		panel.GET("/:gallery", handle.AdminPanelView)
		panel.POST("/:gallery/actions", handle.AdminPanelAction)
	}

	jobs := g.Group("/jobs")
	{
		jobs.GET("", handle.AdminJobs)
		jobs.POST("/:name/run", handle.AdminRunJob)
	}
}
