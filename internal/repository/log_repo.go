package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// LogRepository 课程/咨询记录数据访问接口
// 记录不可修改：接口不提供 Update
type LogRepository interface {
	Create(ctx context.Context, log *model.SessionLog) error
	GetByID(ctx context.Context, id string) (*model.SessionLog, error)
	// ListByStudent 按创建时间从新到旧返回（分析引擎依赖该顺序）
	ListByStudent(ctx context.Context, studentID string) ([]model.SessionLog, error)
	// CountLessons 统计某学生的 수업 기록 数（kind 缺省按 lesson 计）
	CountLessons(ctx context.Context, studentID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// logRepo LogRepository 的 GORM 实现
type logRepo struct {
	db *gorm.DB
}

// NewLogRepo 创建 LogRepository 实例
func NewLogRepo(db *gorm.DB) LogRepository {
	return &logRepo{db: db}
}

func (r *logRepo) Create(ctx context.Context, log *model.SessionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *logRepo) GetByID(ctx context.Context, id string) (*model.SessionLog, error) {
	var log model.SessionLog
	err := r.db.WithContext(ctx).
		Where("log_id = ?", id).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *logRepo) ListByStudent(ctx context.Context, studentID string) ([]model.SessionLog, error) {
	var logs []model.SessionLog
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC, log_id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *logRepo) CountLessons(ctx context.Context, studentID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.SessionLog{}).
		Where("student_id = ? AND kind <> ?", studentID, model.KindConsultation).
		Count(&total).Error
	return total, err
}

func (r *logRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("log_id = ?", id).Delete(&model.SessionLog{}).Error
}
