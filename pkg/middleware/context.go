package middleware

import (
	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/folio/pkg/context"
	"github.com/yeisme/folio/pkg/internal/storage"
	"github.com/yeisme/folio/pkg/scheduler"
)

// ContextMiddleware 把 storage manager 与调度器放进请求 context，
// service 与任务接口从 context 中取依赖. sched 为 nil 时不注入.
func ContextMiddleware(mgr *storage.Manager, sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxPkg.WithStorageManager(c.Request.Context(), mgr)
		if sched != nil {
			ctx = ctxPkg.WithScheduler(ctx, sched)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
