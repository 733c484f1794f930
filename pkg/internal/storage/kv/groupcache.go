package kv

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/groupcache"

	"github.com/yeisme/folio/pkg/configs"
)

// GroupcacheKV 基于 Groupcache 的 KV 实现.
// groupcache 不支持删除，因此每个键带一个代数，Set/Delete 递增代数使旧缓存失效.
type GroupcacheKV struct {
	cache *groupcache.Group    // Groupcache 缓存组
	peers *groupcache.HTTPPool // 对等节点池
	data  map[string]entry     // 本地权威数据
	seq   uint64               // 全局递增代数，删除后重建的键也不会复用旧代数
	mu    sync.RWMutex         // 保护 data 与 seq 的读写锁
	now   func() time.Time
}

type entry struct {
	gen   uint64
	value []byte
}

// groupcacheGetter 从本地权威数据加载 "key#gen".
type groupcacheGetter struct {
	kv *GroupcacheKV
}

func (g *groupcacheGetter) Get(_ context.Context, versioned string, dest groupcache.Sink) error {
	idx := strings.LastIndexByte(versioned, '#')
	if idx < 0 {
		return ErrNotFound
	}

	key := versioned[:idx]

	gen, err := strconv.ParseUint(versioned[idx+1:], 10, 64)
	if err != nil {
		return ErrNotFound
	}

	g.kv.mu.RLock()
	e, exists := g.kv.data[key]
	g.kv.mu.RUnlock()

	if !exists || e.gen != gen {
		return ErrNotFound
	}

	if err := dest.SetBytes(e.value); err != nil {
		return fmt.Errorf("failed to set bytes to sink: %w", err)
	}

	return nil
}

var groupsMu sync.Mutex

// NewGroupcacheKV 创建 Groupcache KV 实例.
func NewGroupcacheKV(_ context.Context, cfg *configs.KVConfig) (Store, error) {
	gcConfig := cfg.Groupcache

	kv := &GroupcacheKV{
		data: make(map[string]entry),
		now:  time.Now,
	}

	groupsMu.Lock()
	defer groupsMu.Unlock()

	if groupcache.GetGroup(gcConfig.Name) != nil {
		return nil, fmt.Errorf("groupcache group %q already registered", gcConfig.Name)
	}

	kv.cache = groupcache.NewGroup(gcConfig.Name, gcConfig.CacheBytes, &groupcacheGetter{kv: kv})

	// 如果有对等节点，设置 HTTP 池
	if len(gcConfig.Peers) > 0 {
		kv.peers = groupcache.NewHTTPPoolOpts(gcConfig.Self, &groupcache.HTTPPoolOptions{})
		kv.peers.Set(gcConfig.Peers...)
	}

	return kv, nil
}

func (g *GroupcacheKV) generation(key string) (uint64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.data[key]

	return e.gen, ok
}

// Get 获取键的值.
func (g *GroupcacheKV) Get(ctx context.Context, key string) ([]byte, error) {
	gen, ok := g.generation(key)
	if !ok {
		return nil, ErrNotFound
	}

	var data []byte
	if err := g.cache.Get(ctx, key+"#"+strconv.FormatUint(gen, 10), groupcache.AllocatingByteSliceSink(&data)); err != nil {
		return nil, ErrNotFound
	}

	value, expired := unwrapTTL(data, g.now())
	if expired {
		_ = g.Delete(ctx, key)
		return nil, ErrNotFound
	}

	return value, nil
}

// Set 设置键的值.
func (g *GroupcacheKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	wrapped := wrapTTL(append([]byte(nil), value...), ttl, g.now())

	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	g.data[key] = entry{gen: g.seq, value: wrapped}

	return nil
}

// Delete 删除键.
func (g *GroupcacheKV) Delete(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.data, key)

	return nil
}

// Exists 检查键是否存在.
func (g *GroupcacheKV) Exists(ctx context.Context, key string) (bool, error) {
	_, err := g.Get(ctx, key)

	return err == nil, nil
}

// Keys 获取所有键.
func (g *GroupcacheKV) Keys(_ context.Context, pattern string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := make([]string, 0, len(g.data))
	for key := range g.data {
		if matchKey(pattern, key) {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// Close 关闭缓存.
func (g *GroupcacheKV) Close() error {
	// Groupcache 没有显式的关闭方法
	return nil
}

func init() {
	Register(BackendGroupcache, NewGroupcacheKV)
}
