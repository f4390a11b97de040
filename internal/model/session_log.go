package model

import "time"

// ── 记录类型 ──

const (
	// KindLesson 수업 기록：计入出勤与课时进度
	KindLesson = "lesson"
	// KindConsultation 상담 기록：不计入出勤与课时进度
	KindConsultation = "consultation"
)

// SessionLog 课程/咨询记录表 — 对应 session_logs
//
// 记录一经写入不可修改，只能整条删除。Tags 在保存时由文本派生一次，
// 之后不随关键词表变化自动重算。CreatedAt 由存储层在插入时赋值，
// 按插入顺序单调不减（出勤、图表聚合依赖该顺序）。
type SessionLog struct {
	LogID     string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	StudentID string      `gorm:"type:uuid;not null;index"                       json:"student_id"`
	Text      string      `gorm:"type:text;not null;default:''"                  json:"text"` // 附带图片时可为空
	Tags      StringArray `gorm:"type:text[]"                                    json:"tags"`
	Kind      string      `gorm:"type:varchar(20);not null;default:'lesson'"     json:"kind"` // lesson | consultation
	Image     *string     `gorm:"type:text"                                      json:"image,omitempty"` // base64 data URL，引擎不解释
	CreatedAt time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (SessionLog) TableName() string { return "session_logs" }

// IsLesson 缺省 kind 按 lesson 处理
func (l *SessionLog) IsLesson() bool { return l.Kind != KindConsultation }
