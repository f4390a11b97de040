package dto

// ── 记录模块 DTO ──

// CreateLogRequest 保存记录请求
//
// text 与 image 至少其一非空（Service 层校验）。
// count 模式课时已满时需 confirmed=true 方可继续保存（建议性拦截，
// 服务端先以 409 提示，客户端确认后携带 confirmed 重试）。
type CreateLogRequest struct {
	Text      string  `json:"text"`
	Kind      string  `json:"kind"      binding:"omitempty,oneof=lesson consultation"`
	Image     *string `json:"image"`
	Confirmed bool    `json:"confirmed"`
}

// LogResponse 单条记录响应
type LogResponse struct {
	ID        string   `json:"id"`
	StudentID string   `json:"student_id"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
	Kind      string   `json:"kind"`
	Image     *string  `json:"image,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// LogListResponse 学生记录列表（已按 kind 划分，各自保持从新到旧）
type LogListResponse struct {
	Lessons       []LogResponse `json:"lessons"`
	Consultations []LogResponse `json:"consultations"`
	Total         int           `json:"total"`
}
