package configs

import (
	"time"

	"github.com/spf13/viper"
)

// CircuitBreakerConfig 媒体存储客户端的熔断器配置.
// 窗口内请求数达到 MinRequests 且失败比例不低于 FailureRate 时打开，Cooldown 后进入半开.
type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	FailureRate float64       `mapstructure:"failure_rate" rule:"gte=0,lte=1"`
	MinRequests uint32        `mapstructure:"min_requests"`
	Window      time.Duration `mapstructure:"window"       rule:"gte=0"`
	Cooldown    time.Duration `mapstructure:"cooldown"     rule:"gte=0"`
	HalfOpenMax uint32        `mapstructure:"half_open_max"`
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.failure_rate", 0.5)
	v.SetDefault("circuit_breaker.min_requests", 10)
	v.SetDefault("circuit_breaker.window", "1m")
	v.SetDefault("circuit_breaker.cooldown", "20s")
	v.SetDefault("circuit_breaker.half_open_max", 5)
}
