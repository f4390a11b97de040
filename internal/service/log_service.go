package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hws4444-design/mathclinic-crm/internal/analytics"
	"github.com/hws4444-design/mathclinic-crm/internal/dto"
	"github.com/hws4444-design/mathclinic-crm/internal/model"
	"github.com/hws4444-design/mathclinic-crm/internal/repository"
)

// ── 记录模块业务错误 ──

var (
	ErrLogNotFound = errors.New("记录不存在")
	ErrEmptyLog    = errors.New("记录内容不能为空（文本与图片至少其一）")
	// ErrSessionsExhausted 建议性拦截：count 模式课时已满。
	// 客户端提示用户确认后携带 confirmed=true 重试即可保存成功。
	ErrSessionsExhausted = errors.New("设定课时数已用完，需确认后继续保存")
)

// LogService 课程/咨询记录业务接口
type LogService interface {
	// Create 保存记录。标签在保存时由文本派生一次（写入后不再重算）。
	Create(ctx context.Context, studentID string, req *dto.CreateLogRequest) (*dto.LogResponse, error)
	// ListByStudent 返回学生全部记录，已按 수업/상담 划分，各组保持从新到旧
	ListByStudent(ctx context.Context, studentID string) (*dto.LogListResponse, error)
	Delete(ctx context.Context, id string) error
}

type logService struct {
	repo   *repository.Repository
	table  analytics.KeywordTable
	logger *zap.Logger
}

// NewLogService 创建 LogService 实例
func NewLogService(repo *repository.Repository, table analytics.KeywordTable, logger *zap.Logger) LogService {
	return &logService{repo: repo, table: table, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *logService) Create(ctx context.Context, studentID string, req *dto.CreateLogRequest) (*dto.LogResponse, error) {
	if strings.TrimSpace(req.Text) == "" && req.Image == nil {
		return nil, ErrEmptyLog
	}

	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = model.KindLesson
	}

	// count 模式且设了上限：课时已满时保存 수업 기록 需调用方显式确认。
	// 确认后保存必须成功（上限只是建议性信号，不是硬拦截）。
	if kind == model.KindLesson &&
		student.BillingMode == model.BillingModeCount &&
		student.TotalSessions > 0 &&
		!req.Confirmed {
		count, err := s.repo.Log.CountLessons(ctx, studentID)
		if err != nil {
			return nil, err
		}
		if count >= int64(student.TotalSessions) {
			return nil, ErrSessionsExhausted
		}
	}

	log := &model.SessionLog{
		StudentID: studentID,
		Text:      req.Text,
		Tags:      analytics.ExtractTags(req.Text, s.table),
		Kind:      kind,
		Image:     req.Image,
	}
	if err := s.repo.Log.Create(ctx, log); err != nil {
		s.logger.Error("保存记录失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return toLogResponse(log), nil
}

// ────────────────────── ListByStudent ──────────────────────

func (s *logService) ListByStudent(ctx context.Context, studentID string) (*dto.LogListResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	logs, err := s.repo.Log.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询记录失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	lessons, consultations := analytics.Split(logs)

	resp := &dto.LogListResponse{
		Lessons:       make([]dto.LogResponse, 0, len(lessons)),
		Consultations: make([]dto.LogResponse, 0, len(consultations)),
		Total:         len(logs),
	}
	for _, l := range lessons {
		resp.Lessons = append(resp.Lessons, *toLogResponse(&l))
	}
	for _, c := range consultations {
		resp.Consultations = append(resp.Consultations, *toLogResponse(&c))
	}
	return resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *logService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Log.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	if err := s.repo.Log.Delete(ctx, id); err != nil {
		s.logger.Error("删除记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// toLogResponse 模型 → 响应 DTO
func toLogResponse(l *model.SessionLog) *dto.LogResponse {
	return &dto.LogResponse{
		ID:        l.LogID,
		StudentID: l.StudentID,
		Text:      l.Text,
		Tags:      l.Tags,
		Kind:      l.Kind,
		Image:     l.Image,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}
