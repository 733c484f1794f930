package configs

import (
	"strings"

	"github.com/spf13/viper"
)

// SiteConfig 站点信息，用于 sitemap.xml、robots.txt 与联系表单跳转.
type SiteConfig struct {
	BaseURL string   `mapstructure:"base_url" rule:"required,url"`
	Locales []string `mapstructure:"locales"  rule:"min=1,dive,oneof=en jp ru"`
	Routes  []string `mapstructure:"routes"`
}

// URL 拼接站点绝对地址.
func (c *SiteConfig) URL(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

func (c *SiteConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("site.base_url", "https://evagorobets.com")
	v.SetDefault("site.locales", []string{"en", "jp", "ru"})
	v.SetDefault("site.routes", []string{
		"",
		"/tokyo-business-portraits",
		"/corporate-events-photography",
		"/corporate",
		"/art-galleries-photography",
		"/portfolio",
		"/clients",
		"/about",
		"/contact-booking",
	})
}
