package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/configs"
)

// CORSMiddleware CORS中间件. 未配置来源时允许全部.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = append(config.AllowHeaders, "If-None-Match")
	config.ExposeHeaders = []string{"ETag", "X-Gallery-Fallback"}

	if len(cfg.AllowOrigins) == 0 || cfg.Debug {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.AllowOrigins
		// 管理后台依赖会话 cookie
		config.AllowCredentials = true
	}

	return cors.New(config)
}
