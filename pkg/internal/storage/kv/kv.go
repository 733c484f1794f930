// Package kv 提供用于键值存储的接口和实现.
package kv

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"
	"time"

	"github.com/yeisme/folio/pkg/configs"
)

// ErrNotFound 键不存在或已过期.
var ErrNotFound = errors.New("kv: key not found")

// Client 带后端名的 Store，供健康检查与命令行展示.
type Client struct {
	Store
	Type Backend
}

// Store 键值存储. 缺失或过期的键统一返回 ErrNotFound.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set ttl 为 0 时使用后端默认值.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Keys 返回匹配 glob 模式的键，空模式表示全部.
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}

// Backend 后端名，与 kv.type 取值一致.
type Backend string

const (
	BackendMemory     Backend = configs.KVMemory
	BackendRedis      Backend = configs.KVRedis
	BackendGroupcache Backend = configs.KVGroupcache
)

// Factory 按配置打开一个后端.
type Factory func(ctx context.Context, cfg *configs.KVConfig) (Store, error)

var factories = make(map[Backend]Factory)

// Register 在 init 中调用，构建标签可去掉某个后端.
func Register(b Backend, f Factory) {
	factories[b] = f
}

// Backends 已注册的后端，按名称排序.
func Backends() []Backend {
	out := slices.Collect(maps.Keys(factories))
	slices.Sort(out)

	return out
}

// NewStore cfg 为 nil 时使用默认配置.
func NewStore(ctx context.Context, b Backend, cfg *configs.KVConfig) (Store, error) {
	f, ok := factories[b]
	if !ok {
		return nil, fmt.Errorf("unsupported kv backend %q", b)
	}

	if cfg == nil {
		def := configs.Defaults().KV
		cfg = &def
	}

	return f(ctx, cfg)
}

// Open 按 cfg.Type 打开后端并包装为 Client.
func Open(ctx context.Context, cfg *configs.KVConfig) (*Client, error) {
	b := Backend(cfg.Type)

	store, err := NewStore(ctx, b, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{Store: store, Type: b}, nil
}

// matchKey 按 glob 规则匹配键；空模式与 "*" 匹配全部.
func matchKey(pattern, key string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}

	ok, err := path.Match(pattern, key)

	return err == nil && ok
}
