package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/storage"
	"github.com/yeisme/folio/pkg/scheduler"
)

func newEngine(t *testing.T, mutate func(cfg *configs.AppConfig)) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := configs.GetConfig()
	prev := *cfg

	t.Cleanup(func() { *configs.GetConfig() = prev })

	*cfg = configs.Defaults()
	if mutate != nil {
		mutate(cfg)
	}

	mgr, err := storage.New(t.Context(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = mgr.Close() })

	sched, err := scheduler.NewScheduler()
	require.NoError(t, err)

	t.Cleanup(func() { _ = sched.Stop() })

	return Setup(gin.New(), cfg, mgr, sched)
}

func serve(e http.Handler, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	return w
}

func TestPublicRoutes(t *testing.T) {
	e := newEngine(t, nil)

	for _, target := range []string{"/api/v1/galleries", "/api/v1/nav", "/api/v1/health", "/api/v1/health/kv", "/sitemap.xml", "/robots.txt", "/metrics"} {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, target, "").Code, target)
	}

	// 媒体存储未配置时使用兜底列表
	w := serve(e, http.MethodGet, "/api/v1/galleries/art", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Gallery-Fallback"))

	w = serve(e, http.MethodPost, "/api/contact", `{"name":"Anna","email":"a@example.com"}`)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestAdminGate(t *testing.T) {
	e := newEngine(t, func(cfg *configs.AppConfig) { cfg.Admin.Password = "letmein" })

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/api/admin/panel", "").Code)

	w := serve(e, http.MethodGet, "/admin/anything", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login?from=%2Fadmin%2Fanything", w.Header().Get("Location"))

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodPost, "/api/admin/auth", `{"password":"nope"}`).Code)

	w = serve(e, http.MethodPost, "/api/admin/auth", `{"password":"letmein"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	w = serve(e, http.MethodGet, "/api/admin/panel", "", cookies[0])
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(e, http.MethodGet, "/api/admin/jobs", "", cookies[0])
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRateLimited(t *testing.T) {
	e := newEngine(t, func(cfg *configs.AppConfig) {
		cfg.Admin.Password = "letmein"
		cfg.RateLimit.Login = configs.RateLimitRule{RPS: 0.01, Burst: 1}
	})

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodPost, "/api/admin/auth", `{"password":"nope"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodPost, "/api/admin/auth", `{"password":"nope"}`).Code)
}
