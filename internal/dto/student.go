package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 注册学生请求
// 姓名必填；date 模式必须提供 plan_end_date（Service 层校验）
type CreateStudentRequest struct {
	Name          string `json:"name"           binding:"required,min=1,max=100"`
	School        string `json:"school"         binding:"max=100"`
	Grade         string `json:"grade"          binding:"max=20"`
	Goal          string `json:"goal"`
	StudentPhone  string `json:"student_phone"  binding:"max=30"`
	GuardianName  string `json:"guardian_name"  binding:"max=100"`
	GuardianPhone string `json:"guardian_phone" binding:"max=30"`
	IntakeNotes   string `json:"intake_notes"`
	BillingMode   string `json:"billing_mode"   binding:"omitempty,oneof=count date"`
	TotalSessions int    `json:"total_sessions" binding:"omitempty,min=0"`
	PlanEndDate   string `json:"plan_end_date"` // "2026-06-30"
}

// UpdateStudentRequest 修改学生档案请求（nil 字段不更新）
// Goal 变更会自动产生一条目标变更审计记录
type UpdateStudentRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=1,max=100"`
	School        *string `json:"school"         binding:"omitempty,max=100"`
	Grade         *string `json:"grade"          binding:"omitempty,max=20"`
	Goal          *string `json:"goal"`
	StudentPhone  *string `json:"student_phone"  binding:"omitempty,max=30"`
	GuardianName  *string `json:"guardian_name"  binding:"omitempty,max=100"`
	GuardianPhone *string `json:"guardian_phone" binding:"omitempty,max=30"`
	IntakeNotes   *string `json:"intake_notes"`
	BillingMode   *string `json:"billing_mode"   binding:"omitempty,oneof=count date"`
	TotalSessions *int    `json:"total_sessions" binding:"omitempty,min=0"`
	PlanEndDate   *string `json:"plan_end_date"`
}

// StudentListRequest 学生列表请求
type StudentListRequest struct {
	Keyword string `form:"keyword" binding:"max=100"` // 姓名/学校 模糊搜索
}

// StudentResponse 学生档案响应
type StudentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	School        string `json:"school"`
	Grade         string `json:"grade"`
	Goal          string `json:"goal"`
	StudentPhone  string `json:"student_phone"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
	IntakeNotes   string `json:"intake_notes"`
	BillingMode   string `json:"billing_mode"`
	TotalSessions int    `json:"total_sessions"`
	PlanEndDate   string `json:"plan_end_date,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// StudentListItem 学生列表项（含弱点 Top3）
type StudentListItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	School     string   `json:"school"`
	Grade      string   `json:"grade"`
	Goal       string   `json:"goal"`
	Weaknesses []string `json:"weaknesses"` // 按出现次数排名的前 3 个弱点标签
}
