package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hws4444-design/mathclinic-crm/pkg/jwt"
	"github.com/hws4444-design/mathclinic-crm/pkg/response"
)

// MustGetTutorID 从 Gin 上下文中安全提取 tutor_id。
// 如果 JWT 中间件未正确注入 tutor_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetTutorID(c *gin.Context) (string, bool) {
	v, exists := c.Get("tutor_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetClaims 从 Gin 上下文中安全提取完整 JWT Claims（登出时需要 JTI）。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}
