package dto

import "github.com/hws4444-design/mathclinic-crm/internal/analytics"

// DashboardResponse 学生详情页一次性聚合数据
// 每次请求基于最新记录全量重算，不做缓存
type DashboardResponse struct {
	Student        StudentResponse          `json:"student"`
	Progress       analytics.Progress       `json:"progress"`
	AttendedDays   []string                 `json:"attended_days"` // "2006-01-02"，升序
	Chart          []analytics.SeriesPoint  `json:"chart"`
	Recommendation analytics.Recommendation `json:"recommendation"`
}
