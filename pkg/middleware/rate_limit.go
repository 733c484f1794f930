package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/yeisme/folio/pkg/configs"
)

// maxLimiterEntries 每张表最多跟踪的 key 数，超出时淘汰最久未用的.
const maxLimiterEntries = 10000

const msgRateLimited = "rate limit exceeded, request too frequent, please try again later"

// limiterTable 每个 key 一个令牌桶.
type limiterTable struct {
	buckets *lru.Cache[string, *rate.Limiter]
	rule    configs.RateLimitRule
}

func newLimiterTable(rule configs.RateLimitRule) *limiterTable {
	// size 为正数时不会返回错误
	buckets, _ := lru.New[string, *rate.Limiter](maxLimiterEntries)

	return &limiterTable{buckets: buckets, rule: rule}
}

func (t *limiterTable) allow(key string) bool {
	l, ok := t.buckets.Get(key)
	if !ok {
		l = rate.NewLimiter(rate.Limit(t.rule.RPS), t.rule.Burst)
		// 并发首次访问时保留先写入的桶
		if prev, exists, _ := t.buckets.PeekOrAdd(key, l); exists {
			l = prev
		}
	}

	return l.Allow()
}

// retryAfter 补回一个令牌所需的秒数，至少 1.
func (t *limiterTable) retryAfter() string {
	return strconv.Itoa(int(math.Max(1, math.Ceil(1/t.rule.RPS))))
}

// keyFunc 按 rate_limit.key 选择限流维度，header 缺失时退回 IP.
func keyFunc(mode string) func(*gin.Context) string {
	mode = strings.TrimSpace(mode)

	switch {
	case mode == "" || strings.EqualFold(mode, "global"):
		return func(*gin.Context) string { return "global" }
	case strings.HasPrefix(strings.ToLower(mode), "header:"):
		name := mode[len("header:"):]

		return func(c *gin.Context) string {
			if v := c.GetHeader(name); v != "" {
				return "h:" + v
			}

			return clientIP(c)
		}
	default:
		return clientIP
	}
}

func limit(t *limiterTable, keyOf func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.allow(keyOf(c)) {
			c.Header("Retry-After", t.retryAfter())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": msgRateLimited})

			return
		}

		c.Next()
	}
}

func pass(c *gin.Context) { c.Next() }

// RateLimitMiddleware 全站限流，rate_limit.enabled 为 false 时放行.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Site.RPS <= 0 {
		return pass
	}

	return limit(newLimiterTable(cfg.Site), keyFunc(cfg.Key))
}

// RuleLimitMiddleware 单个端点的按 IP 限流，始终生效.
func RuleLimitMiddleware(rule configs.RateLimitRule) gin.HandlerFunc {
	if rule.RPS <= 0 {
		return pass
	}

	return limit(newLimiterTable(rule), clientIP)
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}

	if c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}

	return "unknown"
}
