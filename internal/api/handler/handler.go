package handler

import "github.com/hws4444-design/mathclinic-crm/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Student   *StudentHandler
	Log       *LogHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Student:   NewStudentHandler(svc.Student),
		Log:       NewLogHandler(svc.Log),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Export:    NewExportHandler(svc.Export),
	}
}
