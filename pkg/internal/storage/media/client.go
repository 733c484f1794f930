// Package media 是第三方媒体存储（Cloudinary 兼容 HTTP API）的客户端.
//
// 所有读操作在失败时退化为空列表，写操作退化为 false，失败会记录日志与指标，
// 调用方无需处理错误. 每次调用都经过熔断器并带有追踪 span.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/types"
	nlog "github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/metrics"
	"github.com/yeisme/folio/pkg/tracing"
)

// TagAction 标签操作.
type TagAction string

const (
	TagAdd    TagAction = "add"
	TagRemove TagAction = "remove"
)

// 调用名称，用于日志与指标.
const (
	opListFolder  = "list_folder"
	opListTag     = "list_tag"
	opSetTag      = "set_tag"
	opSetMetadata = "set_metadata"
	opDelete      = "delete"
)

const (
	maxPages     = 10       // 单次列举最多翻页数
	maxBodyBytes = 16 << 20 // 响应体上限
)

var errUnconfigured = errors.New("media store credentials not configured")

// Client 媒体存储客户端.
type Client struct {
	cfg     configs.MediaConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zerolog.Logger
	now     func() time.Time
}

// Option 配置 Client.
type Option func(*Client)

// WithHTTPClient 替换底层 HTTP 客户端.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithClock 替换签名时间来源.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New 创建媒体存储客户端.
func New(cfg configs.MediaConfig, cb configs.CircuitBreakerConfig, opts ...Option) *Client {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = configs.DefaultMediaMaxResults
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = configs.DefaultMediaAPIBaseURL
	}

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		breaker: newBreaker(cb),
		logger:  nlog.With("media"),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Configured 三项凭据是否齐全.
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

// CloudName 返回 cloud name，上传组件使用.
func (c *Client) CloudName() string {
	return c.cfg.CloudName
}

// ListByFolder 列出目录下的全部图片.
func (c *Client) ListByFolder(ctx context.Context, folder string) []types.MediaResource {
	q := url.Values{}
	q.Set("prefix", strings.TrimSuffix(folder, "/")+"/")
	q.Set("type", "upload")

	return c.list(ctx, opListFolder, "/resources/image", q)
}

// ListByTag 列出带有标签的全部图片.
func (c *Client) ListByTag(ctx context.Context, tag string) []types.MediaResource {
	return c.list(ctx, opListTag, "/resources/image/tags/"+url.PathEscape(tag), url.Values{})
}

func (c *Client) list(ctx context.Context, op, path string, q url.Values) []types.MediaResource {
	q.Set("max_results", strconv.Itoa(c.cfg.MaxResults))
	q.Set("context", "true")
	q.Set("tags", "true")

	var out []types.MediaResource

	for page := 0; page < maxPages; page++ {
		body, err := c.call(ctx, op, func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path)+"?"+q.Encode(), nil)
			if err != nil {
				return nil, err
			}

			c.basicAuth(req)

			return req, nil
		})
		if err != nil {
			return []types.MediaResource{}
		}

		resp, err := decodeList(body)
		if err != nil {
			c.logger.Warn().Err(err).Str("op", op).Msg("decode media store response failed")

			return []types.MediaResource{}
		}

		for _, r := range resp.Resources {
			out = append(out, r.normalize())
		}

		if resp.NextCursor == "" {
			break
		}

		q.Set("next_cursor", resp.NextCursor)
	}

	if out == nil {
		out = []types.MediaResource{}
	}

	return out
}

// SetTag 为图片添加或移除标签，重复执行结果相同.
func (c *Client) SetTag(ctx context.Context, publicID, tag string, action TagAction) bool {
	if action != TagAdd && action != TagRemove {
		return false
	}

	params := url.Values{}
	params.Set("command", string(action))
	params.Set("tag", tag)
	params.Add("public_ids[]", publicID)

	return c.upload(ctx, opSetTag, "/image/tags", params)
}

// SetMetadata 合并写入 context 元数据，空字段直接返回 true.
func (c *Client) SetMetadata(ctx context.Context, publicID string, fields map[string]string) bool {
	if len(fields) == 0 {
		return true
	}

	params := url.Values{}
	params.Set("command", "add")
	params.Set("context", encodeContext(fields))
	params.Add("public_ids[]", publicID)

	return c.upload(ctx, opSetMetadata, "/image/context", params)
}

// Delete 删除图片.
func (c *Client) Delete(ctx context.Context, publicID string) bool {
	q := url.Values{}
	q.Add("public_ids[]", publicID)

	_, err := c.call(ctx, opDelete, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("/resources/image/upload")+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}

		c.basicAuth(req)

		return req, nil
	})

	return err == nil
}

// upload 发送签名的 Upload API 表单请求.
func (c *Client) upload(ctx context.Context, op, path string, params url.Values) bool {
	_, err := c.call(ctx, op, func(ctx context.Context) (*http.Request, error) {
		form := signedForm(params, c.cfg.APIKey, c.cfg.APISecret, c.now())

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		return req, nil
	})

	return err == nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.APIBaseURL, "/") + "/v1_1/" + url.PathEscape(c.cfg.CloudName) + path
}

func (c *Client) basicAuth(req *http.Request) {
	token := base64.StdEncoding.EncodeToString([]byte(c.cfg.APIKey + ":" + c.cfg.APISecret))
	req.Header.Set("Authorization", "Basic "+token)
}

// call 执行一次调用：凭据检查、熔断、追踪、指标与日志都在这里.
func (c *Client) call(ctx context.Context, op string, build func(context.Context) (*http.Request, error)) ([]byte, error) {
	if !c.Configured() {
		metrics.MediaRequests.WithLabelValues(op, "unconfigured").Inc()
		return nil, errUnconfigured
	}

	ctx, span := tracing.StartSpan(ctx, "media."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()

	var (
		body []byte
		err  error
	)

	exec := func() (any, error) {
		body, err = c.roundTrip(ctx, build)
		return nil, err
	}

	if c.breaker != nil {
		_, err = c.breaker.Execute(exec)
	} else {
		_, err = exec()
	}

	metrics.MediaDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	outcome := "ok"

	switch {
	case err == nil:
	case isOpen(err):
		outcome = "open"
	default:
		outcome = "error"
	}

	metrics.MediaRequests.WithLabelValues(op, outcome).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		c.logger.Warn().Err(err).Str("op", op).Str("outcome", outcome).Msg("media store call failed")

		return nil, err
	}

	span.SetAttributes(attribute.Int("media.response_bytes", len(body)))

	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, build func(context.Context) (*http.Request, error)) ([]byte, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{Code: resp.StatusCode}
	}

	return body, nil
}
