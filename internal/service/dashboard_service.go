package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hws4444-design/mathclinic-crm/internal/analytics"
	"github.com/hws4444-design/mathclinic-crm/internal/dto"
	"github.com/hws4444-design/mathclinic-crm/internal/repository"
)

// DashboardService 学生详情页聚合业务接口
//
// 设计说明：
//   - 引擎无状态：每次请求重新拉取完整记录列表并全量重算
//     （出勤、进度、趋势图、상담 추천），不做任何缓存
//   - 各项推导相互独立，均只消费已划分的记录子序列
type DashboardService interface {
	Get(ctx context.Context, studentID string) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, loc: loc, logger: logger}
}

func (s *dashboardService) Get(ctx context.Context, studentID string) (*dto.DashboardResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", studentID), zap.Error(err))
		return nil, err
	}

	logs, err := s.repo.Log.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询记录失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	lessons, consultations := analytics.Split(logs)

	return &dto.DashboardResponse{
		Student:        *toStudentResponse(student),
		Progress:       analytics.CalcProgress(student, len(lessons)),
		AttendedDays:   analytics.AttendedDays(lessons, s.loc).Days(),
		Chart:          analytics.Series(lessons, s.loc),
		Recommendation: analytics.Recommend(lessons, consultations, s.loc),
	}, nil
}
