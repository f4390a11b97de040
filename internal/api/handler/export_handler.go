package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/hws4444-design/mathclinic-crm/internal/service"
	"github.com/hws4444-design/mathclinic-crm/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStudentExcel 导出学生档案与记录为 Excel
// GET /api/v1/students/:id/export.xlsx
func (h *ExportHandler) ExportStudentExcel(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportStudentExcel(c.Request.Context(), studentID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	setDownloadHeaders(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportAttendanceICS 导出学生出勤日为 iCalendar
// GET /api/v1/students/:id/attendance.ics
func (h *ExportHandler) ExportAttendanceICS(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	data, filename, err := h.exportSvc.ExportAttendanceICS(c.Request.Context(), studentID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	setDownloadHeaders(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12001, "学生不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// setDownloadHeaders 设置文件下载响应头（文件名按 RFC 5987 编码，支持韩文）
func setDownloadHeaders(c *gin.Context, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
}
