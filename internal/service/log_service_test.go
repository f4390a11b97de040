package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hws4444-design/mathclinic-crm/internal/analytics"
	"github.com/hws4444-design/mathclinic-crm/internal/dto"
	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// ── 测试辅助 ──

func setupTestLogService() (LogService, *mockStudentRepo, *mockLogRepo) {
	repo, _, students, logs := newMockRepository()
	svc := NewLogService(repo, analytics.DefaultKeywordTable(), zap.NewNop())
	return svc, students, logs
}

// ── Create 测试 ──

func TestLogService_Create_TagsDerivedAtWrite(t *testing.T) {
	svc, students, _ := setupTestLogService()
	students.students["stu-001"] = &model.Student{StudentID: "stu-001", Name: "김민준"}

	result, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{
		Text: "제곱근 계산이 느림, 분수 분수 나눗셈 실수",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	// 集合语义：분수 出现两次但标签只记一次；느림 映射到 연산속도
	want := []string{"제곱근", "분수", "연산속도", "단순실수"}
	if len(result.Tags) != len(want) {
		t.Fatalf("期望标签=%v，实际=%v", want, result.Tags)
	}
	for i, tag := range want {
		if result.Tags[i] != tag {
			t.Errorf("第%d个标签期望=%s，实际=%s", i, tag, result.Tags[i])
		}
	}
	if result.Kind != model.KindLesson {
		t.Errorf("未指定 kind 应默认 lesson，实际=%s", result.Kind)
	}
}

func TestLogService_Create_EmptyLog(t *testing.T) {
	svc, students, _ := setupTestLogService()
	students.students["stu-001"] = &model.Student{StudentID: "stu-001", Name: "김민준"}

	_, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{Text: "  "})
	if !errors.Is(err, ErrEmptyLog) {
		t.Errorf("期望 ErrEmptyLog，实际: %v", err)
	}

	// 只有图片没有文本允许保存
	img := "https://cdn.example.com/worksheet.png"
	result, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{Image: &img})
	if err != nil {
		t.Fatalf("仅图片的记录应允许保存: %v", err)
	}
	if len(result.Tags) != 0 {
		t.Errorf("空文本不应派生标签，实际=%v", result.Tags)
	}
}

func TestLogService_Create_StudentNotFound(t *testing.T) {
	svc, _, _ := setupTestLogService()

	_, err := svc.Create(context.Background(), "missing", &dto.CreateLogRequest{Text: "메모"})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// 课时已满的完整流程：上限 2 → 保存 2 条成功 → 第 3 条被建议性拦截
// → confirmed=true 重试成功 → 进度显示 3/2、remaining=-1
func TestLogService_Create_ExhaustedAdvisoryFlow(t *testing.T) {
	svc, students, logs := setupTestLogService()
	student := &model.Student{
		StudentID:     "stu-001",
		Name:          "김민준",
		BillingMode:   model.BillingModeCount,
		TotalSessions: 2,
	}
	students.students["stu-001"] = student

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{Text: "수업 진행"}); err != nil {
			t.Fatalf("第%d条保存应成功: %v", i+1, err)
		}
	}

	// 第 3 条未确认 → 409 建议性拦截
	_, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{Text: "보강 수업"})
	if !errors.Is(err, ErrSessionsExhausted) {
		t.Fatalf("期望 ErrSessionsExhausted，实际: %v", err)
	}

	// 确认后保存必须成功
	if _, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{Text: "보강 수업", Confirmed: true}); err != nil {
		t.Fatalf("confirmed=true 保存应成功: %v", err)
	}

	count, _ := logs.CountLessons(context.Background(), "stu-001")
	progress := analytics.CalcProgress(student, int(count))
	if progress.Current != 3 || progress.Remaining != -1 || !progress.Exhausted {
		t.Errorf("期望进度 3/2、remaining=-1、exhausted=true，实际=%+v", progress)
	}
}

func TestLogService_Create_ConsultationNotCounted(t *testing.T) {
	svc, students, _ := setupTestLogService()
	students.students["stu-001"] = &model.Student{
		StudentID:     "stu-001",
		Name:          "김민준",
		BillingMode:   model.BillingModeCount,
		TotalSessions: 1,
	}

	if _, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{Text: "수업"}); err != nil {
		t.Fatalf("第1条수업保存应成功: %v", err)
	}
	// 상담 기록不占课时，已满后仍可无确认保存
	if _, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{
		Text: "학부모 상담", Kind: model.KindConsultation,
	}); err != nil {
		t.Fatalf("상담 기록不应被课时上限拦截: %v", err)
	}
}

func TestLogService_Create_NoLimitNeverExhausted(t *testing.T) {
	svc, students, _ := setupTestLogService()
	students.students["stu-001"] = &model.Student{
		StudentID:     "stu-001",
		Name:          "김민준",
		BillingMode:   model.BillingModeCount,
		TotalSessions: 0, // 未设上限
	}

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), "stu-001", &dto.CreateLogRequest{Text: "수업"}); err != nil {
			t.Fatalf("未设上限时第%d条保存应成功: %v", i+1, err)
		}
	}
}

// ── ListByStudent 测试 ──

func TestLogService_ListByStudent_Partitioned(t *testing.T) {
	svc, students, logs := setupTestLogService()
	students.students["stu-001"] = &model.Student{StudentID: "stu-001", Name: "김민준"}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	logs.logs["log-1"] = &model.SessionLog{
		LogID: "log-1", StudentID: "stu-001", Kind: model.KindLesson,
		Text: "수업 1", CreatedAt: base,
	}
	logs.logs["log-2"] = &model.SessionLog{
		LogID: "log-2", StudentID: "stu-001", Kind: model.KindConsultation,
		Text: "상담 1", CreatedAt: base.Add(time.Hour),
	}
	logs.logs["log-3"] = &model.SessionLog{
		LogID: "log-3", StudentID: "stu-001", Kind: model.KindLesson,
		Text: "수업 2", CreatedAt: base.Add(2 * time.Hour),
	}

	result, err := svc.ListByStudent(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("ListByStudent 应成功: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("期望Total=3，实际=%d", result.Total)
	}
	if len(result.Lessons) != 2 || len(result.Consultations) != 1 {
		t.Fatalf("期望 2 수업 / 1 상담，实际 %d/%d", len(result.Lessons), len(result.Consultations))
	}
	// 各组保持从新到旧
	if result.Lessons[0].Text != "수업 2" || result.Lessons[1].Text != "수업 1" {
		t.Errorf("수업 组应从新到旧，实际=%v", []string{result.Lessons[0].Text, result.Lessons[1].Text})
	}
}

// ── Delete 测试 ──

func TestLogService_Delete(t *testing.T) {
	svc, _, logs := setupTestLogService()
	logs.logs["log-1"] = &model.SessionLog{LogID: "log-1", StudentID: "stu-001", Text: "수업"}

	if err := svc.Delete(context.Background(), "log-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), "log-1"); !errors.Is(err, ErrLogNotFound) {
		t.Errorf("期望 ErrLogNotFound，实际: %v", err)
	}
}
