package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/types"
	"github.com/yeisme/folio/pkg/rule"
)

// AdminListGallery GET /api/admin/gallery?folder= 返回目录下的原始资源，folder 默认为根目录.
func AdminListGallery(c *gin.Context) {
	ctx := c.Request.Context()
	svc := service.NewGalleryService(ctx)

	c.JSON(http.StatusOK, svc.ListFolder(ctx, c.Query("folder")))
}

// AdminDeleteImage DELETE /api/admin/gallery 删除图片.
func AdminDeleteImage(c *gin.Context) {
	var req types.DeleteImageRequest
	_ = c.ShouldBindJSON(&req)

	if req.PublicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingPublicID})
		return
	}

	if !rule.IsPublicID(req.PublicID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	ctx := c.Request.Context()

	ok, err := service.NewGalleryService(ctx).DeleteImage(ctx, req.PublicID)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": ok})
}
