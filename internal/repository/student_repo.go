package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// StudentRepository 学生档案数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	// List 按注册时间从新到旧返回；keyword 非空时按 姓名/学校 模糊过滤
	List(ctx context.Context, keyword string) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	// Delete 删除学生并级联删除其全部记录（同一事务内）
	Delete(ctx context.Context, id string) error
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, keyword string) ([]model.Student, error) {
	var students []model.Student

	db := r.db.WithContext(ctx).Model(&model.Student{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		db = db.Where("name LIKE ? OR school LIKE ?", pattern, pattern)
	}

	if err := db.Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	// 外键已声明 ON DELETE CASCADE，这里仍显式删除记录，
	// 避免依赖某一侧约束（旧库可能缺外键）
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&model.SessionLog{}).Error; err != nil {
			return err
		}
		return tx.Where("student_id = ?", id).Delete(&model.Student{}).Error
	})
}
