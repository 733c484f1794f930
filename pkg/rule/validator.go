// Package rule 封装 go-playground/validator，使用 `rule` 标签，并注册 folio 自定义规则：
//
//	public_id  媒体资源 ID，形如 "eva/art/img_01"
//	locale     站点语言 en | jp | ru
package rule

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	inst *validator.Validate
	once sync.Once
)

// initValidator 优先复用 gin 的 validator 引擎，再注册自定义规则.
func initValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		inst = v
	} else {
		inst = validator.New()
	}

	inst.SetTagName("rule")
	_ = inst.RegisterValidation("public_id", validatePublicID)
	inst.RegisterAlias("locale", "oneof=en jp ru")
}

// publicIDForbidden 媒体存储不接受的字符.
const publicIDForbidden = "?&#\\%<>"

// IsPublicID 判断 s 是否为合法的资源 ID：非空，各段非空且不为 "." 或 ".."，不含控制字符与保留字符.
func IsPublicID(s string) bool {
	if s == "" || strings.ContainsAny(s, publicIDForbidden) {
		return false
	}

	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	for seg := range strings.SplitSeq(s, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}

	return true
}

func validatePublicID(fl validator.FieldLevel) bool {
	return IsPublicID(fl.Field().String())
}

func lazyInit() {
	once.Do(initValidator)
}

// Engine 返回全局 *validator.Validate，若未初始化则先初始化.
func Engine() *validator.Validate {
	lazyInit()

	return inst
}

// RegisterValidation 代理 RegisterValidation，确保已初始化.
func RegisterValidation(tag string, fn validator.Func, opts ...bool) error {
	lazyInit()

	return inst.RegisterValidation(tag, fn, opts...)
}

// ValidationErrors 是格式化后的验证错误字典，键为字段名（受 RegisterTagNameFunc 影响），值为可读错误信息.
type ValidationErrors map[string]string

// Errors 把 validator 返回的错误展开为 字段 -> 规则 的字典，非校验错误返回 nil.
func Errors(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}

		out[fe.Namespace()] = msg
	}

	return out
}

// ValidateStruct 对结构体执行完整校验，返回原始 error（可用 Errors 解析）.
func ValidateStruct(s any) error {
	lazyInit()

	return inst.Struct(s)
}

// ValidateVar 按规则对单个变量校验，例如: ValidateVar("abc", "required,email").
func ValidateVar(field any, tag string) error {
	lazyInit()

	return inst.Var(field, tag)
}

// RegisterAlias 包装 RegisterAlias，便于注册别名规则.
func RegisterAlias(alias, rules string) {
	lazyInit()

	inst.RegisterAlias(alias, rules)
}
