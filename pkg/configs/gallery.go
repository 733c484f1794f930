package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultGalleryRootFolder  = "eva"
	DefaultGalleryCacheTTL    = 60 * time.Second
	DefaultGalleryFallbackTTL = 10 * time.Second
	DefaultGalleryWarmCron    = "*/5 * * * *"

	DefaultFeaturedTag          = "eva_featured"
	DefaultFeaturedOrderKey     = "featured_order"
	DefaultFeaturedParallelism  = 8
	DefaultFeaturedWriteRetries = 2
)

// GalleryConfig 图集投影配置.
type GalleryConfig struct {
	RootFolder  string        `mapstructure:"root_folder"  rule:"required"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"    rule:"gte=0"`
	FallbackTTL time.Duration `mapstructure:"fallback_ttl" rule:"gte=0"`
	WarmEnabled bool          `mapstructure:"warm_enabled"`
	WarmCron    string        `mapstructure:"warm_cron"`
}

// GetCacheTTL 返回投影缓存时长.
func (c *GalleryConfig) GetCacheTTL() time.Duration {
	return c.CacheTTL
}

// Folder 返回某个文件夹图集在媒体存储中的目录.
func (c *GalleryConfig) Folder(name string) string {
	return c.RootFolder + "/" + name
}

func (c *GalleryConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("gallery.root_folder", DefaultGalleryRootFolder)
	v.SetDefault("gallery.cache_ttl", DefaultGalleryCacheTTL)
	v.SetDefault("gallery.fallback_ttl", DefaultGalleryFallbackTTL)
	v.SetDefault("gallery.warm_enabled", true)
	v.SetDefault("gallery.warm_cron", DefaultGalleryWarmCron)
}

// FeaturedConfig 精选集配置.
type FeaturedConfig struct {
	Tag          string `mapstructure:"tag"           rule:"required"`
	OrderKey     string `mapstructure:"order_key"     rule:"required"`
	Parallelism  int    `mapstructure:"parallelism"   rule:"min=1,max=64"`
	WriteRetries uint64 `mapstructure:"write_retries" rule:"max=10"`
}

func (c *FeaturedConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("featured.tag", DefaultFeaturedTag)
	v.SetDefault("featured.order_key", DefaultFeaturedOrderKey)
	v.SetDefault("featured.parallelism", DefaultFeaturedParallelism)
	v.SetDefault("featured.write_retries", DefaultFeaturedWriteRetries)
}
