package model

// Tutor 讲师账号表 — 对应 tutors
// 单讲师场景：通常只有一条记录
type Tutor struct {
	TutorID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tutor_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (Tutor) TableName() string { return "tutors" }
