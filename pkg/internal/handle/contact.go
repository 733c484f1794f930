package handle

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/i18n"
	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/types"
)

// HeaderContactReference 联系表单的受理编号.
const HeaderContactReference = "X-Contact-Reference"

// ContactSubmit POST /api/contact 接收 JSON 或表单，投递后 303 跳回联系页.
func ContactSubmit(c *gin.Context) {
	var brief types.ContactBrief

	// 解析失败时字段为空，后续按缺少必填项处理
	if strings.Contains(c.ContentType(), "json") {
		_ = c.ShouldBindJSON(&brief)
	} else {
		_ = c.ShouldBind(&brief)
	}

	ctx := c.Request.Context()

	res, err := service.NewContactService(ctx).Submit(ctx, brief)
	if res.Reference != "" {
		c.Header(HeaderContactReference, res.Reference)
	}

	state := "sent"
	if err != nil {
		state = "error"
	}

	locale := i18n.Pick(strings.TrimSpace(brief.Locale))
	c.Redirect(http.StatusSeeOther, "/"+string(locale)+"/contact-booking?"+state+"=1")
}
