package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hws4444-design/mathclinic-crm/config"
	"github.com/hws4444-design/mathclinic-crm/internal/api/handler"
	"github.com/hws4444-design/mathclinic-crm/internal/api/middleware"
	"github.com/hws4444-design/mathclinic-crm/pkg/jwt"
	"github.com/hws4444-design/mathclinic-crm/pkg/redis"
)

// 登录接口限速：防止密码暴力破解
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 学生模块
			students := authorized.Group("/students")
			{
				students.GET("", h.Student.ListStudents)
				students.POST("", h.Student.CreateStudent)
				students.GET("/:id", h.Student.GetStudent)
				students.PUT("/:id", h.Student.UpdateStudent)
				students.DELETE("/:id", h.Student.DeleteStudent)

				// 记录模块
				students.POST("/:id/logs", h.Log.CreateLog)
				students.GET("/:id/logs", h.Log.ListLogs)

				// 详情页聚合
				students.GET("/:id/dashboard", h.Dashboard.GetDashboard)

				// 导出模块
				students.GET("/:id/export.xlsx", h.Export.ExportStudentExcel)
				students.GET("/:id/attendance.ics", h.Export.ExportAttendanceICS)
			}

			// 记录删除（按记录自身 ID）
			authorized.DELETE("/logs/:id", h.Log.DeleteLog)
		}
	}

	return r
}
