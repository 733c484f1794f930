package handle

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/types"
)

// HeaderGalleryFallback 响应来自静态兜底列表时为 true.
const HeaderGalleryFallback = "X-Gallery-Fallback"

// GalleryNames GET /api/v1/galleries 返回全部图集名.
func GalleryNames(c *gin.Context) {
	names := gallery.Names()

	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, string(n))
	}

	c.JSON(http.StatusOK, out)
}

// GalleryImages GET /api/v1/galleries/:name 返回公开图片列表，支持 ETag 协商缓存.
func GalleryImages(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := service.NewGalleryService(ctx).Project(ctx, c.Param("name"))
	if err != nil {
		abortWith(c, err)
		return
	}

	images := resp.Images
	if images == nil {
		images = []types.GalleryImage{}
	}

	body, err := sonic.Marshal(images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	etag := ETag(body)

	c.Header("ETag", etag)
	c.Header("Cache-Control", cacheControl(configs.GetConfig().Gallery))

	if resp.Fallback {
		c.Header(HeaderGalleryFallback, "true")
	}

	if etagMatch(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ETag 基于响应体的 xxhash 生成强校验值.
func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}

// etagMatch 按 If-None-Match 的弱比较规则判断是否命中.
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}

	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || strings.TrimPrefix(part, "W/") == etag {
			return true
		}
	}

	return false
}

func cacheControl(cfg configs.GalleryConfig) string {
	secs := int(cfg.CacheTTL.Seconds())
	if secs <= 0 {
		return "no-cache"
	}

	return "public, max-age=" + strconv.Itoa(secs)
}
