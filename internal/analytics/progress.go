package analytics

import (
	"time"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// Progress 课时进度
//
// count 模式：Current/Total/Remaining/Exhausted 有效，Capped 表示是否设了上限；
// Total<=0 视为不设上限，永不 Exhausted，且前端不展示进度。
// date 模式：仅 PlanEndDate 有效，不计算数值进度，不评估 Exhausted
//（截止日只作信息展示，不作为上限告警）。
//
// Exhausted 仅为建议性信号：上限已满时保存新 수업 기록 仍须成功，
// 只要调用方显式确认（见 LogService.Create 的 confirmed 参数）。
type Progress struct {
	Mode        string     `json:"mode"`
	Capped      bool       `json:"capped"`
	Current     int        `json:"current"`
	Total       int        `json:"total"`
	Remaining   int        `json:"remaining"`
	Exhausted   bool       `json:"exhausted"`
	PlanEndDate *time.Time `json:"plan_end_date,omitempty"`
}

// CalcProgress 根据计费方案与 수업 기록 数计算进度
func CalcProgress(student *model.Student, lessonCount int) Progress {
	if student.BillingMode == model.BillingModeDate {
		return Progress{
			Mode:        model.BillingModeDate,
			PlanEndDate: student.PlanEndDate,
		}
	}

	p := Progress{
		Mode:    model.BillingModeCount,
		Current: lessonCount,
		Total:   student.TotalSessions,
	}
	if student.TotalSessions > 0 {
		p.Capped = true
		p.Remaining = student.TotalSessions - lessonCount
		p.Exhausted = p.Remaining <= 0
	}
	return p
}
