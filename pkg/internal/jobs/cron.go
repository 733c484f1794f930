// Package jobs 负责注册与实现业务定时任务（基于 scheduler）.
package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeisme/folio/pkg/configs"
	ctxPkg "github.com/yeisme/folio/pkg/context"
	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/storage"
	"github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/scheduler"
)

// Warmer 预热图集缓存.
type Warmer interface {
	Warm(ctx context.Context) (int, error)
}

// RegisterCronJobs 配置业务定时任务：
//   - 按 gallery.warm_cron 重新投影全部图集并写入缓存
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager, cfg *configs.AppConfig) error {
	if sched == nil {
		return errors.New("scheduler is nil")
	}

	if mgr == nil {
		return errors.New("storage manager is nil")
	}

	if !cfg.Gallery.WarmEnabled {
		log.Logger().Info().Msg("gallery warm job disabled")
		return nil
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	svc := service.NewGalleryService(baseCtx)

	return RegisterGalleryWarm(baseCtx, sched, cfg.Gallery.WarmCron, svc)
}

// RegisterGalleryWarm 注册图集预热任务.
func RegisterGalleryWarm(ctx context.Context, sched *scheduler.Scheduler, cronExpr string, w Warmer) error {
	if err := sched.AddCron(ctx, JobGalleryWarm, cronExpr, func(ctx context.Context) error {
		return runGalleryWarm(ctx, w)
	}); err != nil {
		return fmt.Errorf("register %s: %w", JobGalleryWarm, err)
	}

	return nil
}

func runGalleryWarm(ctx context.Context, w Warmer) error {
	l := log.Logger().With().Str("job", JobGalleryWarm).Logger()

	live, err := w.Warm(ctx)
	if err != nil {
		l.Error().Err(err).Int("live", live).Msg("gallery warm failed")
		return err
	}

	l.Info().Int("live", live).Msg("gallery cache warmed")

	return nil
}
