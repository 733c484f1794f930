// Package metrics 提供监控指标功能.
// 支持Prometheus标准，收集HTTP、媒体存储客户端、缓存与联系表单指标.
//
// Example:
//
//	import "github.com/yeisme/folio/pkg/metrics"
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// 记录指标
//	metrics.MediaRequests.WithLabelValues("list_folder", "ok").Inc()
//	metrics.MediaDuration.WithLabelValues("list_folder").Observe(0.1)
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/folio/pkg/configs"
)

const namespace = "folio"

var (
	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
	factory  = promauto.With(registry)
	initOnce sync.Once
)

// 全局指标变量.
var (
	// RequestCounter HTTP请求计数器.
	RequestCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration HTTP请求持续时间.
	RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// MediaRequests 媒体存储调用次数，outcome: ok / error / unconfigured / open.
	MediaRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_requests_total",
			Help:      "Media store API calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	// MediaDuration 媒体存储调用耗时.
	MediaDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "media_request_duration_seconds",
			Help:      "Media store API call latency",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
		[]string{"op"},
	)

	// CacheResults 缓存命中情况，result: hit / miss / fallback.
	CacheResults = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gallery_cache_results_total",
			Help:      "Gallery projection cache lookups",
		},
		[]string{"gallery", "result"},
	)

	// FeaturedWrites 精选排序元数据写入结果（含重试后），outcome: ok / failed.
	FeaturedWrites = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "featured_order_writes_total",
			Help:      "Featured order metadata writes by outcome",
		},
		[]string{"outcome"},
	)

	// ContactBriefs 联系表单投递结果.
	ContactBriefs = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_briefs_total",
			Help:      "Contact briefs by outcome and transport",
		},
		[]string{"outcome", "transport"},
	)
)

// InitMetrics 初始化Metrics，注册运行时收集器.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled || !config.RuntimeMetrics {
		return nil
	}

	var err error

	initOnce.Do(func() {
		if err = registry.Register(collectors.NewGoCollector()); err != nil {
			return
		}

		err = registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})

	return err
}

// Handler 返回 /metrics 的 HTTP 处理器.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}
