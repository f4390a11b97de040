package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hws4444-design/mathclinic-crm/internal/dto"
	"github.com/hws4444-design/mathclinic-crm/internal/service"
	"github.com/hws4444-design/mathclinic-crm/pkg/response"
)

// LogHandler 记录模块 HTTP 处理器
type LogHandler struct {
	logSvc service.LogService
}

// NewLogHandler 创建 LogHandler
func NewLogHandler(logSvc service.LogService) *LogHandler {
	return &LogHandler{logSvc: logSvc}
}

// CreateLog 保存学生记录（标签在保存时自动派生）
// POST /api/v1/students/:id/logs
//
// count 模式课时已满且未携带 confirmed=true 时返回 409，
// 客户端向讲师确认后携带 confirmed 重试。
func (h *LogHandler) CreateLog(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	var req dto.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	log, err := h.logSvc.Create(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.Created(c, log)
}

// ListLogs 获取学生全部记录（按 수업/상담 划分）
// GET /api/v1/students/:id/logs
func (h *LogHandler) ListLogs(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	logs, err := h.logSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.OK(c, logs)
}

// DeleteLog 删除单条记录
// DELETE /api/v1/logs/:id
func (h *LogHandler) DeleteLog(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "记录ID不能为空")
		return
	}

	if err := h.logSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLogError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleLogError 统一处理记录模块业务错误
func (h *LogHandler) handleLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12001, "学生不存在")
	case errors.Is(err, service.ErrLogNotFound):
		response.NotFound(c, 13001, "记录不存在")
	case errors.Is(err, service.ErrEmptyLog):
		response.BadRequest(c, 13002, "记录内容不能为空")
	case errors.Is(err, service.ErrSessionsExhausted):
		response.Conflict(c, 13003, "등록된 수업 횟수를 모두 사용했습니다. 계속 기록하시겠습니까?")
	default:
		response.InternalError(c)
	}
}
