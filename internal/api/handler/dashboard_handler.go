package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hws4444-design/mathclinic-crm/internal/service"
	"github.com/hws4444-design/mathclinic-crm/pkg/response"
)

// DashboardHandler 学生详情页聚合 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// GetDashboard 获取学生详情页（进度/出勤/趋势图/상담 추천）
// GET /api/v1/students/:id/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	dashboard, err := h.dashboardSvc.Get(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 12001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dashboard)
}
