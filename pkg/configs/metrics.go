package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Prometheus 指标配置.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Path           string `mapstructure:"path"            rule:"required,startswith=/"`
	RuntimeMetrics bool   `mapstructure:"runtime_metrics"` // Go 运行时与进程指标
	MQMetrics      bool   `mapstructure:"mq_metrics"`      // 为事件总线装饰 watermill 指标
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.mq_metrics", false)
}
