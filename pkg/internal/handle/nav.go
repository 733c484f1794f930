package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/i18n"
)

// Nav GET /api/v1/nav?locale= 返回本地化的导航，未指定 locale 时按 Accept-Language 协商.
func Nav(c *gin.Context) {
	locale := requestLocale(c)

	c.JSON(http.StatusOK, gin.H{
		"locale":   locale,
		"hreflang": locale.HrefLang(),
		"items":    i18n.Nav(locale),
	})
}

func requestLocale(c *gin.Context) i18n.Locale {
	if v := c.Query("locale"); v != "" {
		return i18n.Pick(v)
	}

	return i18n.Match(c.GetHeader("Accept-Language"))
}
