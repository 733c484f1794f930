package handle

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/types"
	"github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/middleware"
)

// Login POST /api/admin/auth 校验密码并写入会话 cookie. 未设置密码时总是失败.
func Login(c *gin.Context) {
	cfg := configs.GetConfig()

	var req types.LoginRequest
	// 请求体无法解析按空密码处理
	_ = c.ShouldBindJSON(&req)

	if !cfg.Admin.Enabled() ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.Admin.Password)) != 1 {
		log.With("auth").Warn().Str("client_ip", c.ClientIP()).Msg("admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidPassword})

		return
	}

	token, err := middleware.IssueSession(cfg.Admin, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	middleware.SetSessionCookie(c, cfg.Admin, token, !cfg.Server.Debug)
	c.JSON(http.StatusOK, types.LoginResponse{OK: true})
}

// Logout DELETE /api/admin/auth 清除会话.
func Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, configs.GetConfig().Admin)
	c.JSON(http.StatusOK, types.LoginResponse{OK: true})
}
