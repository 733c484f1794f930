package configs

import (
	"time"

	"github.com/spf13/viper"
)

// KV 后端.
const (
	KVMemory     = "memory"
	KVRedis      = "redis"
	KVGroupcache = "groupcache"
)

type (
	// KVConfig 键值存储配置，图集投影缓存写入这里.
	KVConfig struct {
		Type       string             `mapstructure:"type"       rule:"oneof=memory redis groupcache"`
		Memory     MemoryKVConfig     `mapstructure:"memory"`
		Redis      RedisKVConfig      `mapstructure:"redis"`
		Groupcache GroupcacheKVConfig `mapstructure:"groupcache"`
	}

	// MemoryKVConfig 进程内 LRU.
	MemoryKVConfig struct {
		Size       int           `mapstructure:"size"        rule:"min=1"`
		DefaultTTL time.Duration `mapstructure:"default_ttl" rule:"gte=0"`
	}

	// RedisKVConfig URL 非空时优先于 Addr/Password/DB.
	RedisKVConfig struct {
		URL         string        `mapstructure:"url"          rule:"omitempty,url"`
		Addr        string        `mapstructure:"addr"         rule:"omitempty,hostname_port"`
		Password    string        `mapstructure:"password"`
		DB          int           `mapstructure:"db"           rule:"min=0,max=15"`
		KeyPrefix   string        `mapstructure:"key_prefix"`
		PoolSize    int           `mapstructure:"pool_size"    rule:"gte=0"`
		DialTimeout time.Duration `mapstructure:"dial_timeout" rule:"gte=0"`
	}

	// GroupcacheKVConfig Peers 为空时单机运行.
	GroupcacheKVConfig struct {
		Name       string   `mapstructure:"name"        rule:"required"`
		CacheBytes int64    `mapstructure:"cache_bytes" rule:"min=1048576"`
		Peers      []string `mapstructure:"peers"`
		Self       string   `mapstructure:"self"`
	}
)

func (c *KVConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("kv.type", KVMemory)

	v.SetDefault("kv.memory.size", 1024)
	v.SetDefault("kv.memory.default_ttl", "10m")

	v.SetDefault("kv.redis.url", "")
	v.SetDefault("kv.redis.addr", "localhost:6379")
	v.SetDefault("kv.redis.password", "")
	v.SetDefault("kv.redis.db", 0)
	v.SetDefault("kv.redis.key_prefix", "folio:")
	v.SetDefault("kv.redis.pool_size", 0)
	v.SetDefault("kv.redis.dial_timeout", "5s")

	v.SetDefault("kv.groupcache.name", "folio-cache")
	v.SetDefault("kv.groupcache.cache_bytes", 64<<20)
	v.SetDefault("kv.groupcache.peers", []string{})
	v.SetDefault("kv.groupcache.self", "http://localhost:8080")
}
