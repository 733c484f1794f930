package handle

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/storage"
	"github.com/yeisme/folio/pkg/middleware"
)

const cloudName = "demo"

// fakeCloud 内存版媒体存储 HTTP API，只实现客户端用到的端点.
type fakeCloud struct {
	mu        sync.Mutex
	resources map[string]*cloudResource
	status    int // 非零时所有请求都返回该状态码
}

type cloudResource struct {
	id      string
	created time.Time
	tags    []string
	context map[string]string
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{resources: map[string]*cloudResource{}}
}

func (f *fakeCloud) add(id string, created time.Time, order string, tags ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := &cloudResource{id: id, created: created, tags: tags, context: map[string]string{}}
	if order != "" {
		r.context["featured_order"] = order
	}

	f.resources[id] = r
}

func (f *fakeCloud) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.resources[id]

	return ok
}

func (f *fakeCloud) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1_1/"+cloudName)
	_ = r.ParseForm()

	switch {
	case r.Method == http.MethodGet && path == "/resources/image":
		prefix := r.URL.Query().Get("prefix")
		f.list(w, func(c *cloudResource) bool { return strings.HasPrefix(c.id, prefix) })
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/resources/image/tags/"):
		tag, _ := url.PathUnescape(strings.TrimPrefix(path, "/resources/image/tags/"))
		f.list(w, func(c *cloudResource) bool { return contains(c.tags, tag) })
	case r.Method == http.MethodPost && path == "/image/tags":
		f.tag(w, r.PostForm)
	case r.Method == http.MethodPost && path == "/image/context":
		f.setContext(w, r.PostForm)
	case r.Method == http.MethodDelete && path == "/resources/image/upload":
		for _, id := range r.URL.Query()["public_ids[]"] {
			delete(f.resources, id)
		}

		_, _ = w.Write([]byte(`{"deleted":{}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeCloud) list(w http.ResponseWriter, keep func(*cloudResource) bool) {
	ids := make([]string, 0, len(f.resources))
	for id := range f.resources {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	items := []map[string]any{}

	for _, id := range ids {
		c := f.resources[id]
		if !keep(c) {
			continue
		}

		items = append(items, map[string]any{
			"public_id":  c.id,
			"secure_url": "https://res.example.com/" + c.id + ".jpg",
			"width":      1500,
			"height":     1000,
			"created_at": c.created.UTC().Format(time.RFC3339),
			"tags":       c.tags,
			"context":    map[string]any{"custom": c.context},
		})
	}

	body, _ := sonic.Marshal(map[string]any{"resources": items})
	_, _ = w.Write(body)
}

func (f *fakeCloud) tag(w http.ResponseWriter, form url.Values) {
	tag := form.Get("tag")

	for _, id := range form["public_ids[]"] {
		c, ok := f.resources[id]
		if !ok {
			continue
		}

		var tags []string

		for _, t := range c.tags {
			if t != tag {
				tags = append(tags, t)
			}
		}

		if form.Get("command") == "add" {
			tags = append(tags, tag)
		}

		c.tags = tags
	}

	_, _ = w.Write([]byte(`{"public_ids":[]}`))
}

func (f *fakeCloud) setContext(w http.ResponseWriter, form url.Values) {
	pairs := strings.Split(form.Get("context"), "|")

	for _, id := range form["public_ids[]"] {
		c, ok := f.resources[id]
		if !ok {
			continue
		}

		for _, p := range pairs {
			if k, v, found := strings.Cut(p, "="); found {
				c.context[k] = v
			}
		}
	}

	_, _ = w.Write([]byte(`{"public_ids":[]}`))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}

	return false
}

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// env 处理器测试环境：全局配置 + 指向 fakeCloud 的 storage manager.
type env struct {
	cfg   *configs.AppConfig
	cloud *fakeCloud
	mgr   *storage.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cloud := newFakeCloud()
	srv := httptest.NewServer(cloud)
	t.Cleanup(srv.Close)

	cfg := configs.GetConfig()
	prev := *cfg

	t.Cleanup(func() { *configs.GetConfig() = prev })

	*cfg = configs.Defaults()
	cfg.Media.CloudName = cloudName
	cfg.Media.APIKey = "key"
	cfg.Media.APISecret = "secret"
	cfg.Media.UploadPreset = "unsigned"
	cfg.Media.APIBaseURL = srv.URL
	cfg.Media.RequestTimeout = 2 * time.Second
	cfg.CircuitBreaker.Enabled = false
	cfg.Featured.WriteRetries = 0
	cfg.Admin.Password = "letmein"

	return &env{cfg: cfg, cloud: cloud}
}

// engine 在 manager 创建之后注册路由，测试可先修改配置.
func (e *env) engine(t *testing.T, register func(r *gin.Engine)) *gin.Engine {
	t.Helper()

	mgr, err := storage.New(t.Context(), e.cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = mgr.Close() })

	e.mgr = mgr

	r := gin.New()
	r.Use(middleware.ContextMiddleware(mgr, nil))
	register(r)

	return r
}

func do(r http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out), w.Body.String())

	return out
}
