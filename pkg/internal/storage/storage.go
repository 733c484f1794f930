// Package storage 聚合服务依赖的外部资源：媒体存储客户端、KV 缓存与事件总线.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//		// 处理错误
//	}
//	defer mgr.Close()
//
//	media := mgr.GetMediaClient()
//	cache := mgr.GetKVClient()
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yeisme/folio/pkg/cache"
	"github.com/yeisme/folio/pkg/configs"
	kvc "github.com/yeisme/folio/pkg/internal/storage/kv"
	mediac "github.com/yeisme/folio/pkg/internal/storage/media"
	mqc "github.com/yeisme/folio/pkg/internal/storage/mq"
	nlog "github.com/yeisme/folio/pkg/log"
)

// GalleryCacheNamespace 图集投影缓存键前缀.
const GalleryCacheNamespace = "gallery:"

// Manager 聚合所有存储资源.
type Manager struct {
	Media *mediac.Client
	KV    *kvc.Client
	MQ    *mqc.Client
	// Gallery 图集投影缓存，进程内共享以合并并发未命中
	Gallery *cache.Cache
}

var (
	mgr     *Manager
	mgrErr  error
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	mgrOnce.Do(func() {
		mgr, mgrErr = New(ctx, configs.GetConfig())
	})

	return mgr, mgrErr
}

// New 按给定配置创建 Manager. 媒体存储未配置不是错误，调用会退化.
func New(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	m := &Manager{
		Media: mediac.New(cfg.Media, cfg.CircuitBreaker),
	}

	var err error
	if m.KV, err = kvc.Open(ctx, &cfg.KV); err != nil {
		return nil, fmt.Errorf("init kv: %w", err)
	}

	m.Gallery = cache.NewCache(m.KV, cache.WithNamespace(GalleryCacheNamespace))

	if m.MQ, err = mqc.New(ctx, &cfg.MQ, cfg.Metrics); err != nil {
		_ = m.KV.Close()
		return nil, fmt.Errorf("init mq: %w", err)
	}

	l := nlog.Logger()
	if !m.Media.Configured() {
		l.Warn().Msg("media store credentials missing, galleries will use static fallback")
	}

	l.Info().
		Str("kv", cfg.KV.Type).
		Str("mq", string(cfg.MQ.Type)).
		Bool("media_configured", m.Media.Configured()).
		Msg("storage manager initialized")

	return m, nil
}

// GetMediaClient 获取媒体存储客户端.
func (m *Manager) GetMediaClient() *mediac.Client {
	return m.Media
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetGalleryCache 获取图集投影缓存.
func (m *Manager) GetGalleryCache() *cache.Cache {
	return m.Gallery
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close 释放 KV 与 MQ 连接.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	var errs []error

	if m.MQ != nil {
		errs = append(errs, m.MQ.Close())
	}

	if m.KV != nil {
		errs = append(errs, m.KV.Close())
	}

	return errors.Join(errs...)
}
