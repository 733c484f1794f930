package handle

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/folio/pkg/internal/storage/media"
	"github.com/yeisme/folio/pkg/internal/types"
	"github.com/yeisme/folio/pkg/middleware"
	"github.com/yeisme/folio/pkg/scheduler"
)

func adminRoutes(r *gin.Engine) {
	r.POST("/api/admin/auth", Login)
	r.DELETE("/api/admin/auth", Logout)
	r.GET("/api/admin/gallery", AdminListGallery)
	r.DELETE("/api/admin/gallery", AdminDeleteImage)
	r.GET("/api/admin/featured", AdminFeaturedList)
	r.POST("/api/admin/featured", AdminFeaturedUpdate)
	r.GET("/api/admin/panel", AdminPanelGalleries)
	r.GET("/api/admin/panel/:gallery", AdminPanelView)
	r.POST("/api/admin/panel/:gallery/actions", AdminPanelAction)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	r := e.engine(t, adminRoutes)

	w := do(r, http.MethodPost, "/api/admin/auth", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid password"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/admin/auth", `not json`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/admin/auth", `{"password":"letmein"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	require.NoError(t, middleware.VerifySession(e.cfg.Admin, cookies[0].Value))

	w = do(r, http.MethodDelete, "/api/admin/auth", "")
	require.Equal(t, http.StatusOK, w.Code)

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestLoginWithoutPassword(t *testing.T) {
	e := newEnv(t)
	e.cfg.Admin.Password = ""
	r := e.engine(t, adminRoutes)

	w := do(r, http.MethodPost, "/api/admin/auth", `{"password":""}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminGallery(t *testing.T) {
	e := newEnv(t)
	e.cloud.add("eva/portraits/a", t0, "")
	e.cloud.add("eva/art/b", t0, "")
	r := e.engine(t, adminRoutes)

	w := do(r, http.MethodGet, "/api/admin/gallery?folder=eva/portraits", "")
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[[]types.MediaResource](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "eva/portraits/a", list[0].PublicID)

	w = do(r, http.MethodGet, "/api/admin/gallery", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.MediaResource](t, w), 2)

	w = do(r, http.MethodDelete, "/api/admin/gallery", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing publicId"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/admin/gallery", `{"publicId":"eva/art/b"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.False(t, e.cloud.has("eva/art/b"))
}

func TestAdminFeatured(t *testing.T) {
	e := newEnv(t)
	e.cloud.add("eva/a", t0, "2", "eva_featured")
	e.cloud.add("eva/b", t0, "1", "eva_featured")
	e.cloud.add("eva/c", t0, "")
	r := e.engine(t, adminRoutes)

	ids := func() []string {
		w := do(r, http.MethodGet, "/api/admin/featured", "")
		require.Equal(t, http.StatusOK, w.Code)

		return decode[[]string](t, w)
	}

	assert.Equal(t, []string{"eva/b", "eva/a"}, ids())

	w := do(r, http.MethodPost, "/api/admin/featured", `{"publicId":"eva/c","action":"add"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"result":{"order":3,"order_written":true}}`, w.Body.String())
	assert.Equal(t, []string{"eva/b", "eva/a", "eva/c"}, ids())

	w = do(r, http.MethodPost, "/api/admin/featured", `{"publicId":"eva/c","action":"move","direction":"up"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"order":["eva/b","eva/c","eva/a"]}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/admin/featured", `{"action":"reorder","orderedIds":["eva/a","","eva/b","eva/c"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, []string{"eva/a", "eva/b", "eva/c"}, ids())

	w = do(r, http.MethodPost, "/api/admin/featured", `{"publicId":"eva/a","action":"remove"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"eva/b", "eva/c"}, ids())

	e.cloud.status = http.StatusBadGateway
	w = do(r, http.MethodPost, "/api/admin/featured", `{"publicId":"eva/a","action":"add"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.FeaturedResponse](t, w)
	assert.False(t, resp.OK)
	require.NotNil(t, resp.Result)
	assert.False(t, resp.Result.OrderWritten)
}

func TestSetTagTwiceKeepsOneTag(t *testing.T) {
	e := newEnv(t)
	e.cloud.add("eva/img42", t0, "")
	e.engine(t, adminRoutes)

	ctx := context.Background()
	assert.True(t, e.mgr.Media.SetTag(ctx, "eva/img42", "eva_featured", media.TagAdd))
	assert.True(t, e.mgr.Media.SetTag(ctx, "eva/img42", "eva_featured", media.TagAdd))

	e.cloud.mu.Lock()
	tags := append([]string(nil), e.cloud.resources["eva/img42"].tags...)
	e.cloud.mu.Unlock()

	assert.Equal(t, []string{"eva_featured"}, tags)
}

func TestAdminFeaturedInvalidBody(t *testing.T) {
	e := newEnv(t)
	r := e.engine(t, adminRoutes)

	for _, body := range []string{
		`not json`,
		`{}`,
		`{"action":"publish","publicId":"x"}`,
		`{"action":"add"}`,
		`{"action":"remove","publicId":""}`,
		`{"action":"reorder"}`,
		`{"action":"move","publicId":"x","direction":"left"}`,
	} {
		w := do(r, http.MethodPost, "/api/admin/featured", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Invalid body"}`, w.Body.String(), body)
	}
}

func TestAdminPanel(t *testing.T) {
	e := newEnv(t)
	e.cloud.add("eva/art/one", t0, "")
	e.cloud.add("eva/home", t0, "1", "eva_featured")
	r := e.engine(t, adminRoutes)

	w := do(r, http.MethodGet, "/api/admin/panel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string][]types.GalleryInfo](t, w)["galleries"], 5)

	w = do(r, http.MethodGet, "/api/admin/panel/art", "")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[types.PanelView](t, w)
	require.Len(t, view.Rows, 1)
	assert.False(t, view.Rows[0].Featured)
	assert.Equal(t, types.AspectLandscape, view.Rows[0].Aspect)
	assert.True(t, view.WritesEnabled)
	assert.Equal(t, "eva/art", view.Upload.Folder)

	w = do(r, http.MethodPost, "/api/admin/panel/art/actions", `{"action":"feature","publicId":"eva/art/one"}`)
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[types.PanelActionResponse](t, w)
	assert.True(t, res.OK)
	require.Len(t, res.View.Rows, 1)
	assert.Equal(t, 2, res.View.Rows[0].FeaturedPosition)

	w = do(r, http.MethodGet, "/api/admin/panel/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/admin/panel/art/actions", `{"action":"delete"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/admin/panel/art/actions", `{"action":"move_up","publicId":"eva/art/one"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/admin/panel/art/actions", `{"action":"explode"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminJobs(t *testing.T) {
	e := newEnv(t)

	sched, err := scheduler.NewScheduler()
	require.NoError(t, err)
	sched.Start()
	t.Cleanup(func() { _ = sched.Stop() })

	require.NoError(t, sched.AddCron(t.Context(), "gallery.warm", "0 0 1 1 *", func(context.Context) error { return nil }))

	r := e.engine(t, func(r *gin.Engine) {
		r.Use(middleware.ContextMiddleware(e.mgr, sched))
		r.GET("/api/admin/jobs", AdminJobs)
		r.POST("/api/admin/jobs/:name/run", AdminRunJob)
	})

	w := do(r, http.MethodGet, "/api/admin/jobs", "")
	require.Equal(t, http.StatusOK, w.Code)

	jobs := decode[map[string][]scheduler.JobInfo](t, w)["jobs"]
	require.Len(t, jobs, 1)
	assert.Equal(t, "gallery.warm", jobs[0].Name)

	w = do(r, http.MethodPost, "/api/admin/jobs/gallery.warm/run", "")
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = do(r, http.MethodPost, "/api/admin/jobs/missing/run", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
