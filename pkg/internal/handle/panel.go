package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/types"
)

// AdminPanelGalleries GET /api/admin/panel 返回可选图集.
func AdminPanelGalleries(c *gin.Context) {
	svc := service.NewPanelService(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"galleries": svc.Galleries()})
}

// AdminPanelView GET /api/admin/panel/:gallery 返回面板视图.
func AdminPanelView(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := service.NewPanelService(ctx).View(ctx, c.Param("gallery"))
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// AdminPanelAction POST /api/admin/panel/:gallery/actions 执行动作并返回刷新后的视图.
func AdminPanelAction(c *gin.Context) {
	var req types.PanelAction
	if err := bindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	ctx := c.Request.Context()

	view, ok, err := service.NewPanelService(ctx).Apply(ctx, c.Param("gallery"), req)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, types.PanelActionResponse{OK: ok, View: view})
}
