package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yeisme/folio/pkg/configs"
)

const (
	sessionIssuer  = "folio"
	sessionSubject = "admin"

	adminAPIPrefix  = "/api/admin"
	adminAuthPath   = "/api/admin/auth"
	adminPagePrefix = "/admin"
)

// ErrSessionDisabled 未设置管理密码时所有会话都无效.
var ErrSessionDisabled = errors.New("admin password not configured")

// IssueSession 签发管理会话令牌（HS256）.
func IssueSession(cfg configs.AdminConfig, now time.Time) (string, error) {
	if !cfg.Enabled() {
		return "", ErrSessionDisabled
	}

	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   sessionSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.SessionTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.SigningKey())
}

// VerifySession 校验会话令牌的签名、签发者与有效期.
func VerifySession(cfg configs.AdminConfig, token string) error {
	if !cfg.Enabled() {
		return ErrSessionDisabled
	}

	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return cfg.SigningKey(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithSubject(sessionSubject),
		jwt.WithExpirationRequired(),
	)

	return err
}

// SessionMiddleware 管理会话校验：
//   - /api/admin/* 缺少有效会话返回 401 JSON
//   - /admin/* 页面重定向到登录页并带上 from
//   - 登录页与 /api/admin/auth 不校验
func SessionMiddleware(cfg configs.AdminConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !guarded(path, cfg.LoginPath) {
			c.Next()
			return
		}

		if token, err := c.Cookie(cfg.CookieName); err == nil && token != "" {
			if VerifySession(cfg, token) == nil {
				c.Next()
				return
			}
		}

		if strings.HasPrefix(path, adminAPIPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Redirect(http.StatusFound, cfg.LoginPath+"?from="+url.QueryEscape(path))
		c.Abort()
	}
}

func guarded(path, loginPath string) bool {
	if strings.HasPrefix(path, adminAuthPath) || strings.HasPrefix(path, loginPath) {
		return false
	}

	return strings.HasPrefix(path, adminAPIPrefix) || strings.HasPrefix(path, adminPagePrefix)
}

// SetSessionCookie 写入会话 cookie：HTTP-only，SameSite=Lax，非调试模式下 Secure.
func SetSessionCookie(c *gin.Context, cfg configs.AdminConfig, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, token, int(cfg.SessionTTL/time.Second), "/", "", secure, true)
}

// ClearSessionCookie 清除会话 cookie.
func ClearSessionCookie(c *gin.Context, cfg configs.AdminConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", false, true)
}
