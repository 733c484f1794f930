// Package configs 管理应用程序配置，包括媒体存储、缓存、事件总线、管理后台与联系表单的配置信息.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv）并启用热重载.
//
// Example:
//
//	import "path/to/configs"
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
//
// Example accessing Media config:
//
//	config := configs.GetConfig()
//	if config.Media.Configured() {
//		fmt.Println("cloud:", config.Media.CloudName)
//	}
//
// Example accessing Gallery config:
//
//	config := configs.GetConfig()
//	ttl := config.Gallery.GetCacheTTL()
//	fmt.Println("TTL:", ttl)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/yeisme/folio/pkg/rule"
)

// AppVersion 应用版本号，构建时可通过 ldflags 覆盖.
var AppVersion = "0.1.0"

// EnvPrefix 环境变量前缀.
const EnvPrefix = "FOLIO"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server         ServerConfig         `mapstructure:"server"`          // ServerConfig 服务器配置，端口、调试模式等
		Log            LogConfig            `mapstructure:"log"`             // LogConfig 日志相关配置
		Media          MediaConfig          `mapstructure:"media"`           // MediaConfig 第三方媒体存储配置
		Gallery        GalleryConfig        `mapstructure:"gallery"`         // GalleryConfig 图集投影与缓存配置
		Featured       FeaturedConfig       `mapstructure:"featured"`        // FeaturedConfig 精选集排序配置
		Admin          AdminConfig          `mapstructure:"admin"`           // AdminConfig 管理后台会话配置
		Contact        ContactConfig        `mapstructure:"contact"`         // ContactConfig 联系表单投递配置
		Site           SiteConfig           `mapstructure:"site"`            // SiteConfig 站点信息（sitemap/robots）
		KV             KVConfig             `mapstructure:"kv"`              // KVConfig 缓存后端配置
		MQ             MQConfig             `mapstructure:"mq"`              // MQConfig 事件总线配置
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`      // RateLimitConfig 限流配置
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"` // CircuitBreakerConfig 媒体存储熔断配置
		Metrics        MetricsConfig        `mapstructure:"metrics"`         // MetricsConfig 监控配置
		Tracing        TracingConfig        `mapstructure:"tracing"`         // TracingConfig 追踪配置
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// envAliases 兼容旧部署使用的环境变量名.
var envAliases = map[string][]string{
	"media.cloud_name":      {"CLOUDINARY_CLOUD_NAME"},
	"media.api_key":         {"CLOUDINARY_API_KEY"},
	"media.api_secret":      {"CLOUDINARY_API_SECRET"},
	"media.upload_preset":   {"CLOUDINARY_UPLOAD_PRESET", "NEXT_PUBLIC_CLOUDINARY_UPLOAD_PRESET"},
	"admin.password":        {"ADMIN_PASSWORD"},
	"admin.session_secret":  {"ADMIN_SESSION_SECRET"},
	"contact.webhook_url":   {"CONTACT_WEBHOOK_URL"},
	"contact.to":            {"CONTACT_TO_EMAIL"},
	"contact.from":          {"CONTACT_FROM_EMAIL"},
	"contact.smtp.host":     {"SMTP_HOST"},
	"contact.smtp.port":     {"SMTP_PORT"},
	"contact.smtp.username": {"SMTP_USERNAME"},
	"contact.smtp.password": {"SMTP_PASSWORD"},
	"site.base_url":         {"SITE_BASE_URL"},
	"server.port":           {"PORT"},
	"kv.redis.url":          {"REDIS_URL"},
}

// InitConfig 加载应用程序配置，支持多种格式(yaml、json、toml、dotenv)并启用热重载.
// 找不到配置文件时仅使用默认值与环境变量.
func InitConfig(path string) error {
	appViper = viper.New()
	// 设置默认值
	setAllDefaults(appViper)

	explicitFile := false

	// 检查path是否是文件
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		// 是文件，使用SetConfigFile，Viper会自动检测类型
		appViper.SetConfigFile(path)

		explicitFile = true
	} else {
		// 是目录，设置配置名和路径
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(path + "/configs")

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				explicitFile = true

				break
			}
		}
	}

	appViper.SetEnvPrefix(EnvPrefix)
	appViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	appViper.AutomaticEnv()

	if err := bindEnvAliases(appViper); err != nil {
		return err
	}

	// 读取配置
	if err := appViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 解析到全局配置
	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&globalConfig); err != nil {
		return err
	}

	if appViper.ConfigFileUsed() != "" {
		reloadConfigs(appViper, globalConfig.Server.ReloadConfig)
	}

	return nil
}

// bindEnvAliases 为每个配置键绑定 FOLIO_ 前缀变量以及兼容别名.
func bindEnvAliases(v *viper.Viper) error {
	for key, aliases := range envAliases {
		names := make([]string, 0, len(aliases)+1)
		names = append(names, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
		names = append(names, aliases...)

		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var serverConfig ServerConfig

	var logConfig LogConfig

	var mediaConfig MediaConfig

	var galleryConfig GalleryConfig

	var featuredConfig FeaturedConfig

	var adminConfig AdminConfig

	var contactConfig ContactConfig

	var siteConfig SiteConfig

	var kvConfig KVConfig

	var mqConfig MQConfig

	var rateLimitConfig RateLimitConfig

	var cbConfig CircuitBreakerConfig

	var metricsConfig MetricsConfig

	var tracingConfig TracingConfig

	serverConfig.setDefaults(v)
	logConfig.setDefaults(v)
	mediaConfig.setDefaults(v)
	galleryConfig.setDefaults(v)
	featuredConfig.setDefaults(v)
	adminConfig.setDefaults(v)
	contactConfig.setDefaults(v)
	siteConfig.setDefaults(v)
	kvConfig.setDefaults(v)
	mqConfig.setDefaults(v)
	rateLimitConfig.setDefaults(v)
	cbConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}
	// 启用配置热重载
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		var next AppConfig
		if err := v.Unmarshal(&next); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
			return
		}

		if err := Validate(&next); err != nil {
			fmt.Printf("Rejected reloaded config: %v\n", err)
			return
		}

		globalConfig = next
	})
	v.WatchConfig()
}

// Validate 使用 rule 标签校验配置.
func Validate(cfg *AppConfig) error {
	if err := rule.ValidateStruct(cfg); err != nil {
		var fields []string
		for k, v := range rule.Errors(err) {
			fields = append(fields, k+":"+v)
		}

		if len(fields) == 0 {
			return fmt.Errorf("invalid config: %w", err)
		}

		return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
	}

	return nil
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

func GetViper() *viper.Viper {
	return appViper
}

// Defaults 返回仅包含默认值的配置，便于测试与命令行工具使用.
func Defaults() AppConfig {
	v := viper.New()
	setAllDefaults(v)

	var cfg AppConfig
	_ = v.Unmarshal(&cfg)

	return cfg
}
