package configs

import (
	"time"

	"github.com/spf13/viper"
)

// MQType 消息队列类型.
type MQType string

const (
	MQTypeGoChannel MQType = "gochannel"
	MQTypeNATS      MQType = "nats"

	DefaultMQURL           = "nats://localhost:4222"
	DefaultMaxReconnects   = 5        // 默认最大重连次数.
	DefaultReconnectWait   = 5        // 默认重连等待时间（秒）.
	DefaultMQClientID      = "folio"  // 默认客户端ID
	DefaultPingInterval    = 20       // 默认ping间隔 (秒)
	DefaultBufferSize      = 32768    // 默认缓冲区大小 (32KB)
	DefaultGoChannelBuffer = 64       // 进程内通道缓冲
	DefaultSubjectPrefix   = "folio." // 默认主题前缀
)

// MQConfig 消息队列配置，默认使用进程内 gochannel.
type MQConfig struct {
	Type MQType `mapstructure:"type" rule:"oneof=gochannel nats"`

	// gochannel
	GoChannelBuffer int64 `mapstructure:"gochannel_buffer" rule:"min=0"`

	// nats
	URL                    string   `mapstructure:"url"`
	User                   string   `mapstructure:"user"`
	Password               string   `mapstructure:"password"`
	ClientID               string   `mapstructure:"client_id"`
	MaxReconnects          int      `mapstructure:"max_reconnects"           rule:"min=0,max=100"`
	ReconnectWait          int      `mapstructure:"reconnect_wait"           rule:"min=1,max=300"`
	PingInterval           int      `mapstructure:"ping_interval"            rule:"min=1,max=300"`
	BufferSize             int      `mapstructure:"buffer_size"              rule:"min=1024,max=1048576"`
	JWT                    string   `mapstructure:"jwt"`
	NKey                   string   `mapstructure:"nkey"` // nkey 用户 seed（SU 开头），可与 JWT 搭配
	ClusterURLs            []string `mapstructure:"cluster_urls"`
	SubjectPrefix          string   `mapstructure:"subject_prefix"`
	JetStreamEnabled       bool     `mapstructure:"jetstream_enabled"`
	JetStreamAutoProvision bool     `mapstructure:"jetstream_auto_provision"`
	JetStreamTrackMsgID    bool     `mapstructure:"jetstream_track_msg_id"`
	JetStreamDurablePrefix string   `mapstructure:"jetstream_durable_prefix"`
}

// GetMQType 返回当前配置的消息队列类型.
func (c *MQConfig) GetMQType() MQType {
	return c.Type
}

// GetReconnectWait 返回重连等待时间.
func (c *MQConfig) GetReconnectWait() time.Duration {
	return time.Duration(c.ReconnectWait) * time.Second
}

// setDefaults 设置MQ配置的默认值.
func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", MQTypeGoChannel)
	v.SetDefault("mq.gochannel_buffer", DefaultGoChannelBuffer)

	// NATS 默认值
	v.SetDefault("mq.url", DefaultMQURL)
	v.SetDefault("mq.user", "")
	v.SetDefault("mq.password", "")
	v.SetDefault("mq.client_id", DefaultMQClientID)
	v.SetDefault("mq.max_reconnects", DefaultMaxReconnects)
	v.SetDefault("mq.reconnect_wait", DefaultReconnectWait)
	v.SetDefault("mq.ping_interval", DefaultPingInterval)
	v.SetDefault("mq.buffer_size", DefaultBufferSize)
	v.SetDefault("mq.jwt", "")
	v.SetDefault("mq.nkey", "")
	v.SetDefault("mq.cluster_urls", []string{})
	v.SetDefault("mq.subject_prefix", DefaultSubjectPrefix)
	v.SetDefault("mq.jetstream_enabled", false)
	v.SetDefault("mq.jetstream_auto_provision", true)
	v.SetDefault("mq.jetstream_track_msg_id", true)
	v.SetDefault("mq.jetstream_durable_prefix", "folio-durable")
}
