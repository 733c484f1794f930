// Package handle 提供 HTTP 请求处理器. 处理器从请求 context 中获取 service 依赖，
// 错误统一以 {"error": "..."} 返回.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/rule"
)

// 对外错误信息.
const (
	msgInvalidBody     = "Invalid body"
	msgMissingPublicID = "Missing publicId"
	msgInvalidPassword = "Invalid password"
)

// bindJSON 解析 JSON 请求体并按 rule 标签校验.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return err
	}

	return rule.ValidateStruct(obj)
}

// statusOf 把业务错误映射为 HTTP 状态码.
func statusOf(err error) int {
	switch {
	case errors.Is(err, gallery.ErrUnknownGallery):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMissingPublicID),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInvalidBrief):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}
