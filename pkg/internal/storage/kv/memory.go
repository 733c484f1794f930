package kv

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/yeisme/folio/pkg/configs"
)

// MemoryKV 基于 expirable LRU 的进程内 KV 实现.
// 条目整体受 default_ttl 约束，单键 TTL 通过 ttl 包装实现.
type MemoryKV struct {
	lru *expirable.LRU[string, []byte]
	now func() time.Time
}

// NewMemoryKV 创建内存 KV 实例.
func NewMemoryKV(_ context.Context, cfg *configs.KVConfig) (Store, error) {
	size := cfg.Memory.Size
	if size <= 0 {
		size = 1024
	}

	return &MemoryKV{
		lru: expirable.NewLRU[string, []byte](size, nil, cfg.Memory.DefaultTTL),
		now: time.Now,
	}, nil
}

// Get 获取键的值.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	raw, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrNotFound
	}

	value, expired := unwrapTTL(raw, m.now())
	if expired {
		m.lru.Remove(key)
		return nil, ErrNotFound
	}

	// 返回副本
	result := make([]byte, len(value))
	copy(result, value)

	return result, nil
}

// Set 设置键的值.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	data := make([]byte, len(value))
	copy(data, value)

	m.lru.Add(key, wrapTTL(data, ttl, m.now()))

	return nil
}

// Delete 删除键.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Exists 检查键是否存在.
func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := m.Get(ctx, key); err != nil {
		return false, nil //nolint:nilerr // 未命中不是错误
	}

	return true, nil
}

// Keys 获取匹配的键.
func (m *MemoryKV) Keys(_ context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0)

	for _, k := range m.lru.Keys() {
		if matchKey(pattern, k) {
			keys = append(keys, k)
		}
	}

	return keys, nil
}

// Close 关闭存储（内存实现无需操作）.
func (m *MemoryKV) Close() error {
	m.lru.Purge()
	return nil
}

func init() {
	Register(BackendMemory, NewMemoryKV)
}
