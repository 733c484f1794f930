// Package context 在 context.Context 中携带请求范围的依赖：storage manager 与后台调度器，
// 并提供带追踪信息的 logger.
package context

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/folio/pkg/cache"
	"github.com/yeisme/folio/pkg/internal/storage"
	kvc "github.com/yeisme/folio/pkg/internal/storage/kv"
	mediac "github.com/yeisme/folio/pkg/internal/storage/media"
	mqc "github.com/yeisme/folio/pkg/internal/storage/mq"
	"github.com/yeisme/folio/pkg/scheduler"
)

type (
	managerKey   struct{}
	schedulerKey struct{}
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, managerKey{}, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	mgr, _ := ctx.Value(managerKey{}).(*storage.Manager)
	return mgr
}

// WithScheduler 将后台调度器存储到 context 中.
func WithScheduler(ctx context.Context, sched *scheduler.Scheduler) context.Context {
	return context.WithValue(ctx, schedulerKey{}, sched)
}

// GetScheduler 从 context 中获取调度器，未注入时为 nil.
func GetScheduler(ctx context.Context) *scheduler.Scheduler {
	sched, _ := ctx.Value(schedulerKey{}).(*scheduler.Scheduler)
	return sched
}

// GetMediaClient 媒体存储客户端.
func GetMediaClient(ctx context.Context) *mediac.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMediaClient()
	}

	return nil
}

// GetGalleryCache 图集投影缓存.
func GetGalleryCache(ctx context.Context) *cache.Cache {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetGalleryCache()
	}

	return nil
}

// GetMQClient 事件总线客户端.
func GetMQClient(ctx context.Context) *mqc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMQClient()
	}

	return nil
}

// GetKVClient KV 客户端.
func GetKVClient(ctx context.Context) *kvc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}

// WithTraceContext 为 logger 附加当前 span 的 trace_id 与 span_id.
func WithTraceContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}

	return logger.With().
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String()).
		Logger()
}
