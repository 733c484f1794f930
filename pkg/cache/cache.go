// Package cache 在 kv.Store 之上提供带命名空间的泛型缓存，值用 sonic 编码.
//
//	c := cache.NewCache(store, cache.WithNamespace("gallery:"))
//	resp, hit, err := cache.GetOrLoad(ctx, c, "portraits", func(ctx context.Context) (types.GalleryResponse, time.Duration, error) {
//	    return project(ctx)
//	})
//
// 未命中返回 ErrMiss. GetOrLoad 合并并发未命中，写回失败不影响返回值.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/yeisme/folio/pkg/internal/storage/kv"
)

// ErrMiss 缓存未命中.
var ErrMiss = kv.ErrNotFound

// Cache 一个命名空间下的缓存视图.
type Cache struct {
	store     kv.Store
	namespace string
	flight    singleflight.Group
}

// Option 配置 Cache.
type Option func(*Cache)

// WithNamespace 为所有键添加前缀.
func WithNamespace(ns string) Option {
	return func(c *Cache) { c.namespace = ns }
}

func NewCache(store kv.Store, opts ...Option) *Cache {
	c := &Cache{store: store}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// IsMiss 判断错误是否为未命中.
func IsMiss(err error) bool {
	return errors.Is(err, ErrMiss)
}

func (c *Cache) key(k string) string { return c.namespace + k }

// Get 读取并解码. 键不存在时返回 ErrMiss.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var v T

	raw, err := c.store.Get(ctx, c.key(key))
	if err != nil {
		return v, err
	}

	if err := sonic.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode cache %s: %w", key, err)
	}

	return v, nil
}

// Set ttl 为 0 时使用后端默认值.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache %s: %w", key, err)
	}

	return c.store.Set(ctx, c.key(key), raw, ttl)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, c.key(key))
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.store.Exists(ctx, c.key(key))
}

// GetOrLoad 命中时直接返回；未命中时同一键只运行一次 loader，TTL 由 loader 决定.
// loader 出错时不写缓存. hit 表示是否来自缓存.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, loader func(context.Context) (T, time.Duration, error)) (T, bool, error) {
	if v, err := Get[T](ctx, c, key); err == nil {
		return v, true, nil
	}

	// 合并的加载由所有等待者共享，不随首个调用方取消
	lctx := context.WithoutCancel(ctx)

	res, err, _ := c.flight.Do(c.key(key), func() (any, error) {
		v, ttl, err := loader(lctx)
		if err != nil {
			return nil, err
		}

		_ = Set(lctx, c, key, v, ttl)

		return v, nil
	})

	var zero T
	if err != nil {
		return zero, false, err
	}

	v, ok := res.(T)
	if !ok {
		return zero, false, fmt.Errorf("cache %s: unexpected type %T", key, res)
	}

	return v, false, nil
}

// Clear 删除当前命名空间下的全部键.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.store.Keys(ctx, c.namespace+"*")
	if err != nil {
		return err
	}

	var errs []error

	for _, k := range keys {
		if !strings.HasPrefix(k, c.namespace) {
			continue
		}

		if err := c.store.Delete(ctx, k); err != nil && !IsMiss(err) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
