package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// TutorRepository 讲师账号数据访问接口
type TutorRepository interface {
	Create(ctx context.Context, tutor *model.Tutor) error
	GetByID(ctx context.Context, id string) (*model.Tutor, error)
	GetByEmail(ctx context.Context, email string) (*model.Tutor, error)
	Count(ctx context.Context) (int64, error)
}

// tutorRepo TutorRepository 的 GORM 实现
type tutorRepo struct {
	db *gorm.DB
}

// NewTutorRepo 创建 TutorRepository 实例
func NewTutorRepo(db *gorm.DB) TutorRepository {
	return &tutorRepo{db: db}
}

func (r *tutorRepo) Create(ctx context.Context, tutor *model.Tutor) error {
	return r.db.WithContext(ctx).Create(tutor).Error
}

func (r *tutorRepo) GetByID(ctx context.Context, id string) (*model.Tutor, error) {
	var tutor model.Tutor
	err := r.db.WithContext(ctx).
		Where("tutor_id = ?", id).
		First(&tutor).Error
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (r *tutorRepo) GetByEmail(ctx context.Context, email string) (*model.Tutor, error) {
	var tutor model.Tutor
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&tutor).Error
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (r *tutorRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Tutor{}).Count(&total).Error
	return total, err
}
