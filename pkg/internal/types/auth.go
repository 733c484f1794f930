package types

// LoginRequest POST /api/admin/auth 请求体.
type LoginRequest struct {
	Password string `json:"password" rule:"required"`
}

// LoginResponse 登录结果.
type LoginResponse struct {
	OK bool `json:"ok"`
}
