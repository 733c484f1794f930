package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/folio/pkg/context"
)

const timeout = 2 * time.Second

const healthCheckKey = "health:check"

type componentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health GET /api/v1/health 汇总各组件状态. 媒体存储未配置不算故障，图集会使用兜底.
func Health(c *gin.Context) {
	ctx := c.Request.Context()

	components := map[string]componentHealth{
		"media": mediaHealth(ctx),
		"kv":    kvHealth(ctx),
		"mq":    mqHealth(ctx),
	}

	status, code := "ok", http.StatusOK

	for name, h := range components {
		if name != "media" && h.Status != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{"status": status, "components": components})
}

// HealthKV KV 缓存健康检查.
func HealthKV(c *gin.Context) {
	writeComponent(c, "kv", kvHealth(c.Request.Context()))
}

// HealthMQ 消息队列健康检查.
func HealthMQ(c *gin.Context) {
	writeComponent(c, "mq", mqHealth(c.Request.Context()))
}

func writeComponent(c *gin.Context, name string, h componentHealth) {
	code := http.StatusOK
	if h.Status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{"component": name, "status": h.Status, "error": h.Error})
}

func mediaHealth(ctx context.Context) componentHealth {
	m := ctxPkg.GetMediaClient(ctx)
	switch {
	case m == nil:
		return componentHealth{Status: "unhealthy", Error: "media client not initialized"}
	case !m.Configured():
		return componentHealth{Status: "unconfigured"}
	default:
		return componentHealth{Status: "ok"}
	}
}

func kvHealth(ctx context.Context) componentHealth {
	kvc := ctxPkg.GetKVClient(ctx)
	if kvc == nil || kvc.Store == nil {
		return componentHealth{Status: "unhealthy", Error: "kv client not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := kvc.Exists(ctx, healthCheckKey); err != nil {
		return componentHealth{Status: "unhealthy", Error: err.Error()}
	}

	return componentHealth{Status: "ok"}
}

func mqHealth(ctx context.Context) componentHealth {
	// publisher 与 subscriber 初始化在 New 中, 判空即可
	if ctxPkg.GetMQClient(ctx) == nil {
		return componentHealth{Status: "unhealthy", Error: "mq client not initialized"}
	}

	return componentHealth{Status: "ok"}
}
