package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hws4444-design/mathclinic-crm/pkg/jwt"
	"github.com/hws4444-design/mathclinic-crm/pkg/redis"
	"github.com/hws4444-design/mathclinic-crm/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token，
// 通过后将 tutor_id 与完整 Claims 注入上下文。
// rdb 不为 nil 时额外检查 Token 黑名单（登出后的 Token 被拒绝）。
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		if rdb != nil {
			// Redis 出错时降级放行，只拦截确认在黑名单中的 Token
			if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
				response.Unauthorized(c, 10002, "Token 已失效")
				c.Abort()
				return
			}
		}

		c.Set("tutor_id", claims.TutorID)
		c.Set("claims", claims)

		c.Next()
	}
}
