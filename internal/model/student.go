package model

import "time"

// ── 课时计费模式 ──

const (
	// BillingModeCount 按次数计费：TotalSessions 为课时上限（0 = 不设上限）
	BillingModeCount = "count"
	// BillingModeDate 按日期计费：PlanEndDate 为有效期截止日，不设课时上限
	BillingModeDate = "date"
)

// Student 学生档案表 — 对应 students
//
// 历史上家长联系方式字段经历过几代 schema（单一 parent_phone /
// 父母分列），统一收敛为 guardian_name + guardian_phone 一组，
// 由 000002 迁移落地，不在读取侧做字段探测。
type Student struct {
	StudentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	School    string `gorm:"type:varchar(100)"                              json:"school"`
	Grade     string `gorm:"type:varchar(20)"                               json:"grade"`
	Goal      string `gorm:"type:text"                                      json:"goal"` // 학습 목표（自由文本）

	// 联系方式（canonical shape，见上）
	StudentPhone  string `gorm:"type:varchar(30)"  json:"student_phone"`
	GuardianName  string `gorm:"type:varchar(100)" json:"guardian_name"`
	GuardianPhone string `gorm:"type:varchar(30)"  json:"guardian_phone"`

	// 入学面谈备注
	IntakeNotes string `gorm:"type:text" json:"intake_notes"`

	// 课时计费方案
	BillingMode   string     `gorm:"type:varchar(10);not null;default:'count'" json:"billing_mode"` // count | date
	TotalSessions int        `gorm:"not null;default:0"                        json:"total_sessions"`
	PlanEndDate   *time.Time `gorm:"type:date"                                 json:"plan_end_date,omitempty"`

	BaseModel

	// 关联（删除学生时级联删除记录）
	Logs []SessionLog `gorm:"foreignKey:StudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"logs,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
