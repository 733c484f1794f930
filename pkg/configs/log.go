package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 7
	DefaultLogFileMaxAgeDays = 28
)

type (
	// LogConfig 日志配置. File.Path 为空时只写控制台.
	LogConfig struct {
		Level  string        `mapstructure:"level"  rule:"oneof=trace debug info warn error fatal panic disabled"`
		Format string        `mapstructure:"format" rule:"oneof=console json"`
		File   LogFileConfig `mapstructure:"file"`
	}

	// LogFileConfig 滚动日志文件.
	LogFileConfig struct {
		Path       string `mapstructure:"path"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"  rule:"gte=0"`
		MaxBackups int    `mapstructure:"max_backups"  rule:"gte=0"`
		MaxAgeDays int    `mapstructure:"max_age_days" rule:"gte=0"`
		Compress   bool   `mapstructure:"compress"`
	}
)

// Enabled 是否写文件.
func (f *LogFileConfig) Enabled() bool {
	return f.Path != ""
}

func (l *LogConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.file.path", "")
	v.SetDefault("log.file.max_size_mb", DefaultLogFileMaxSizeMB)
	v.SetDefault("log.file.max_backups", DefaultLogFileMaxBackups)
	v.SetDefault("log.file.max_age_days", DefaultLogFileMaxAgeDays)
	v.SetDefault("log.file.compress", true)
}
