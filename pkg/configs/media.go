package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultMediaAPIBaseURL  = "https://api.cloudinary.com"
	DefaultMediaTimeout     = 15 * time.Second
	DefaultMediaMaxResults  = 200
	DefaultMediaDeliveryURL = "https://res.cloudinary.com"
)

// MediaConfig 第三方媒体存储（Cloudinary 兼容 API）配置.
type MediaConfig struct {
	CloudName      string        `mapstructure:"cloud_name"`
	APIKey         string        `mapstructure:"api_key"`
	APISecret      string        `mapstructure:"api_secret"`
	UploadPreset   string        `mapstructure:"upload_preset"` // 管理后台上传组件使用的 unsigned preset
	APIBaseURL     string        `mapstructure:"api_base_url"    rule:"required,url"`
	DeliveryURL    string        `mapstructure:"delivery_url"    rule:"omitempty,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" rule:"gte=0"`
	MaxResults     int           `mapstructure:"max_results"     rule:"min=1,max=500"`
}

// Configured 三项凭据是否齐全.
func (c *MediaConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// UploadEnabled 上传组件是否可用，只需要 cloud name 与 preset.
func (c *MediaConfig) UploadEnabled() bool {
	return c.CloudName != "" && c.UploadPreset != ""
}

func (c *MediaConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("media.cloud_name", "")
	v.SetDefault("media.api_key", "")
	v.SetDefault("media.api_secret", "")
	v.SetDefault("media.upload_preset", "")
	v.SetDefault("media.api_base_url", DefaultMediaAPIBaseURL)
	v.SetDefault("media.delivery_url", DefaultMediaDeliveryURL)
	v.SetDefault("media.request_timeout", DefaultMediaTimeout)
	v.SetDefault("media.max_results", DefaultMediaMaxResults)
}
