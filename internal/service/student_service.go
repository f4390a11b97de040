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

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound      = errors.New("学生不存在")
	ErrNameRequired         = errors.New("学生姓名不能为空")
	ErrPlanEndDateRequired  = errors.New("date 计费模式必须设置有效期截止日")
	ErrPlanEndDateInvalid   = errors.New("有效期截止日格式无效，应为 YYYY-MM-DD")
	ErrTotalSessionsInvalid = errors.New("课时上限不能为负数")
)

// planDateFormat 计费有效期的日期格式
const planDateFormat = "2006-01-02"

// StudentService 学生档案业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	// List 返回学生列表，每项附带按出现次数排名的弱点标签 Top3
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentListItem, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	// Delete 删除学生并级联删除其全部记录
	Delete(ctx context.Context, id string) error
}

type studentService struct {
	repo   *repository.Repository
	table  analytics.KeywordTable
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, table analytics.KeywordTable, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, table: table, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	// 校验在任何存储调用之前完成
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.TotalSessions < 0 {
		return nil, ErrTotalSessionsInvalid
	}

	mode := req.BillingMode
	if mode == "" {
		mode = model.BillingModeCount
	}

	student := &model.Student{
		Name:          req.Name,
		School:        req.School,
		Grade:         req.Grade,
		Goal:          req.Goal,
		StudentPhone:  req.StudentPhone,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		IntakeNotes:   req.IntakeNotes,
		BillingMode:   mode,
		TotalSessions: req.TotalSessions,
	}

	if mode == model.BillingModeDate {
		if req.PlanEndDate == "" {
			return nil, ErrPlanEndDateRequired
		}
		end, err := time.Parse(planDateFormat, req.PlanEndDate)
		if err != nil {
			return nil, ErrPlanEndDateInvalid
		}
		student.PlanEndDate = &end
		student.TotalSessions = 0 // date 模式不设课时上限
	}

	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("注册学生失败", zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentListItem, error) {
	students, err := s.repo.Student.List(ctx, req.Keyword)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentListItem, 0, len(students))
	for _, st := range students {
		logs, err := s.repo.Log.ListByStudent(ctx, st.StudentID)
		if err != nil {
			s.logger.Error("查询学生记录失败", zap.String("student_id", st.StudentID), zap.Error(err))
			return nil, err
		}
		texts := make([]string, 0, len(logs))
		for _, l := range logs {
			texts = append(texts, l.Text)
		}

		result = append(result, dto.StudentListItem{
			ID:         st.StudentID,
			Name:       st.Name,
			School:     st.School,
			Grade:      st.Grade,
			Goal:       st.Goal,
			Weaknesses: analytics.TopWeaknesses(texts, s.table),
		})
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	// 目标变更检测基于当前落库值精确比较；此处只规划审计记录，
	// 待全部校验通过后再写入，被驳回的更新不得留下审计痕迹
	var audit *model.SessionLog
	if req.Goal != nil {
		audit = analytics.PlanGoalUpdate(student.StudentID, student.Goal, *req.Goal)
		student.Goal = *req.Goal
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		student.Name = *req.Name
	}
	if req.School != nil {
		student.School = *req.School
	}
	if req.Grade != nil {
		student.Grade = *req.Grade
	}
	if req.StudentPhone != nil {
		student.StudentPhone = *req.StudentPhone
	}
	if req.GuardianName != nil {
		student.GuardianName = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		student.GuardianPhone = *req.GuardianPhone
	}
	if req.IntakeNotes != nil {
		student.IntakeNotes = *req.IntakeNotes
	}
	if req.BillingMode != nil {
		student.BillingMode = *req.BillingMode
	}
	if req.TotalSessions != nil {
		if *req.TotalSessions < 0 {
			return nil, ErrTotalSessionsInvalid
		}
		student.TotalSessions = *req.TotalSessions
	}
	if req.PlanEndDate != nil {
		if *req.PlanEndDate == "" {
			student.PlanEndDate = nil
		} else {
			end, err := time.Parse(planDateFormat, *req.PlanEndDate)
			if err != nil {
				return nil, ErrPlanEndDateInvalid
			}
			student.PlanEndDate = &end
		}
	}
	if student.BillingMode == model.BillingModeDate && student.PlanEndDate == nil {
		return nil, ErrPlanEndDateRequired
	}

	// 校验全部通过，先落审计再落档案。
	// 审计记录与档案更新是两次独立的存储调用：审计写入失败
	// 只记日志、不拦截档案更新（接受短暂不一致窗口）
	if audit != nil {
		if err := s.repo.Log.Create(ctx, audit); err != nil {
			s.logger.Error("目标变更审计记录写入失败",
				zap.String("student_id", student.StudentID),
				zap.Error(err),
			)
		}
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生档案失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// toStudentResponse 模型 → 响应 DTO
func toStudentResponse(st *model.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		ID:            st.StudentID,
		Name:          st.Name,
		School:        st.School,
		Grade:         st.Grade,
		Goal:          st.Goal,
		StudentPhone:  st.StudentPhone,
		GuardianName:  st.GuardianName,
		GuardianPhone: st.GuardianPhone,
		IntakeNotes:   st.IntakeNotes,
		BillingMode:   st.BillingMode,
		TotalSessions: st.TotalSessions,
		CreatedAt:     st.CreatedAt.Format(time.RFC3339),
	}
	if st.PlanEndDate != nil {
		resp.PlanEndDate = st.PlanEndDate.Format(planDateFormat)
	}
	return resp
}
