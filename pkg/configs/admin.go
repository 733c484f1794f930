package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAdminCookieName = "admin_session"
	DefaultAdminSessionTTL = 7 * 24 * time.Hour
	DefaultAdminLoginPath  = "/admin/login"
)

// AdminConfig 管理后台会话配置.
type AdminConfig struct {
	Password      string        `mapstructure:"password"`       // 为空时登录总是失败
	SessionSecret string        `mapstructure:"session_secret"` // JWT 签名密钥，为空时由密码派生
	CookieName    string        `mapstructure:"cookie_name"     rule:"required"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"     rule:"gt=0"`
	LoginPath     string        `mapstructure:"login_path"      rule:"required,startswith=/"`
}

// Enabled 是否设置了管理密码.
func (c *AdminConfig) Enabled() bool {
	return c.Password != ""
}

// SigningKey 返回会话令牌的签名密钥.
func (c *AdminConfig) SigningKey() []byte {
	if c.SessionSecret != "" {
		return []byte(c.SessionSecret)
	}

	return []byte("folio-admin:" + c.Password)
}

func (c *AdminConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.session_secret", "")
	v.SetDefault("admin.cookie_name", DefaultAdminCookieName)
	v.SetDefault("admin.session_ttl", DefaultAdminSessionTTL)
	v.SetDefault("admin.login_path", DefaultAdminLoginPath)
}
