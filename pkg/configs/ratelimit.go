package configs

import "github.com/spf13/viper"

// RateLimitConfig 全站限流与端点限流. Login/Contact 不受 Enabled 影响.
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Key global | ip | header:<Name>
	Key     string        `mapstructure:"key"     rule:"oneof=global ip|startswith=header:"`
	Site    RateLimitRule `mapstructure:"site"`
	Login   RateLimitRule `mapstructure:"login"`
	Contact RateLimitRule `mapstructure:"contact"`
}

// RateLimitRule 令牌桶参数.
type RateLimitRule struct {
	RPS   float64 `mapstructure:"rps"   rule:"gt=0"`
	Burst int     `mapstructure:"burst" rule:"min=1"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.key", "ip")

	v.SetDefault("rate_limit.site.rps", 50.0)
	v.SetDefault("rate_limit.site.burst", 100)
	v.SetDefault("rate_limit.login.rps", 0.2)
	v.SetDefault("rate_limit.login.burst", 5)
	v.SetDefault("rate_limit.contact.rps", 0.05)
	v.SetDefault("rate_limit.contact.burst", 3)
}
