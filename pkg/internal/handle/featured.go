package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/types"
)

// AdminFeaturedList GET /api/admin/featured 返回排序后的精选 public id.
func AdminFeaturedList(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, service.NewFeaturedService(ctx).IDs(ctx))
}

// AdminFeaturedUpdate POST /api/admin/featured 加入、移出、移动或整体重排.
func AdminFeaturedUpdate(c *gin.Context) {
	var req types.FeaturedRequest
	if err := bindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	ctx := c.Request.Context()
	svc := service.NewFeaturedService(ctx)

	switch req.Action {
	case types.FeaturedActionReorder:
		if req.OrderedIDs == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
			return
		}

		c.JSON(http.StatusOK, types.FeaturedResponse{OK: svc.Reorder(ctx, req.OrderedIDs)})
	case types.FeaturedActionMove:
		if req.PublicID == "" || (req.Direction != types.DirectionUp && req.Direction != types.DirectionDown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
			return
		}

		order, ok := svc.Move(ctx, req.PublicID, req.Direction)
		c.JSON(http.StatusOK, types.FeaturedResponse{OK: ok, Order: order})
	case types.FeaturedActionAdd:
		if req.PublicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
			return
		}

		res, ok := svc.Add(ctx, req.PublicID)
		c.JSON(http.StatusOK, types.FeaturedResponse{OK: ok, Result: &res})
	default: // remove
		if req.PublicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
			return
		}

		c.JSON(http.StatusOK, types.FeaturedResponse{OK: svc.Remove(ctx, req.PublicID)})
	}
}
