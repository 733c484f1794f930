package configs

import (
	"net"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

const DefaultPort = 8080

// ServerConfig HTTP 服务配置.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             rule:"min=1,max=65535"`
	Host            string        `mapstructure:"host"             rule:"ip"`
	ReloadConfig    bool          `mapstructure:"reload_config"`
	Debug           bool          `mapstructure:"debug"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     rule:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    rule:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     rule:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" rule:"gt=0"`
	AllowOrigins    []string      `mapstructure:"allow_origins"` // CORS 允许的来源，为空时允许全部
	// TrustedProxies 可信反向代理（IP 或 CIDR）. 为空时忽略 X-Forwarded-For，限流按连接地址计.
	TrustedProxies []string `mapstructure:"trusted_proxies" rule:"dive,ip|cidr"`
}

// Addr 监听地址 host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (s *ServerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.reload_config", true)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "2m")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allow_origins", []string{})
	v.SetDefault("server.trusted_proxies", []string{})
}
