package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
	"github.com/hws4444-design/mathclinic-crm/internal/repository"
)

// ── Mock TutorRepository ──

type mockTutorRepo struct {
	tutors map[string]*model.Tutor
}

func newMockTutorRepo() *mockTutorRepo {
	return &mockTutorRepo{tutors: make(map[string]*model.Tutor)}
}

func (m *mockTutorRepo) Create(_ context.Context, tutor *model.Tutor) error {
	if tutor.TutorID == "" {
		tutor.TutorID = "tutor-" + tutor.Email
	}
	m.tutors[tutor.TutorID] = tutor
	return nil
}

func (m *mockTutorRepo) GetByID(_ context.Context, id string) (*model.Tutor, error) {
	if t, ok := m.tutors[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTutorRepo) GetByEmail(_ context.Context, email string) (*model.Tutor, error) {
	for _, t := range m.tutors {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTutorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.tutors)), nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	seq      int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("stu-%d", m.seq)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, keyword string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if keyword != "" && !strings.Contains(s.Name, keyword) && !strings.Contains(s.School, keyword) {
			continue
		}
		result = append(result, *s)
	}
	// 与仓储层一致：创建时间倒序
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// ── Mock LogRepository ──

type mockLogRepo struct {
	logs      map[string]*model.SessionLog
	seq       int
	createErr error // 置位后 Create 返回该错误
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{logs: make(map[string]*model.SessionLog)}
}

func (m *mockLogRepo) Create(_ context.Context, log *model.SessionLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	if log.LogID == "" {
		m.seq++
		log.LogID = fmt.Sprintf("log-%d", m.seq)
	}
	m.logs[log.LogID] = log
	return nil
}

func (m *mockLogRepo) GetByID(_ context.Context, id string) (*model.SessionLog, error) {
	if l, ok := m.logs[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLogRepo) ListByStudent(_ context.Context, studentID string) ([]model.SessionLog, error) {
	var result []model.SessionLog
	for _, l := range m.logs {
		if l.StudentID == studentID {
			result = append(result, *l)
		}
	}
	// 与仓储层一致：创建时间倒序，时间相同时按 ID 倒序保证稳定
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].LogID > result[j].LogID
	})
	return result, nil
}

func (m *mockLogRepo) CountLessons(_ context.Context, studentID string) (int64, error) {
	var count int64
	for _, l := range m.logs {
		if l.StudentID == studentID && l.Kind != model.KindConsultation {
			count++
		}
	}
	return count, nil
}

func (m *mockLogRepo) Delete(_ context.Context, id string) error {
	delete(m.logs, id)
	return nil
}

// ── 组装 ──

func newMockRepository() (*repository.Repository, *mockTutorRepo, *mockStudentRepo, *mockLogRepo) {
	tutors := newMockTutorRepo()
	students := newMockStudentRepo()
	logs := newMockLogRepo()
	return &repository.Repository{
		Tutor:   tutors,
		Student: students,
		Log:     logs,
	}, tutors, students, logs
}
