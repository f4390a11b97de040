package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService(t *testing.T) (ExportService, *mockStudentRepo, *mockLogRepo) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("加载时区失败: %v", err)
	}
	repo, _, students, logs := newMockRepository()
	svc := NewExportService(repo, loc, zap.NewNop())
	return svc, students, logs
}

// ── ExportStudentExcel 测试 ──

func TestExportService_ExportStudentExcel_NotFound(t *testing.T) {
	svc, _, _ := setupTestExportService(t)

	_, _, err := svc.ExportStudentExcel(context.Background(), "missing")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestExportService_ExportStudentExcel_Success(t *testing.T) {
	svc, students, logs := setupTestExportService(t)
	students.students["stu-001"] = &model.Student{
		StudentID:     "stu-001",
		Name:          "김민준",
		School:        "한빛중학교",
		BillingMode:   model.BillingModeCount,
		TotalSessions: 8,
	}
	logs.logs["log-1"] = &model.SessionLog{
		LogID: "log-1", StudentID: "stu-001", Kind: model.KindLesson,
		Text: "제곱근 풀이가 느림", Tags: model.StringArray{"제곱근", "연산속도"},
		CreatedAt: seoulTime(t, "2026-03-01 10:00"),
	}

	buf, filename, err := svc.ExportStudentExcel(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "김민준_기록.xlsx" {
		t.Errorf("期望文件名=김민준_기록.xlsx，实际=%s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为有效 Excel: %v", err)
	}
	defer f.Close()

	name, _ := f.GetCellValue("학생 정보", "B1")
	if name != "김민준" {
		t.Errorf("期望档案首行=김민준，实际=%s", name)
	}
	text, _ := f.GetCellValue("기록", "C2")
	if text != "제곱근 풀이가 느림" {
		t.Errorf("期望记录内容=제곱근 풀이가 느림，实际=%s", text)
	}
	tags, _ := f.GetCellValue("기록", "D2")
	if tags != "제곱근, 연산속도" {
		t.Errorf("期望标签列=제곱근, 연산속도，实际=%s", tags)
	}
}

// ── ExportAttendanceICS 测试 ──

func TestExportService_ExportAttendanceICS(t *testing.T) {
	svc, students, logs := setupTestExportService(t)
	students.students["stu-001"] = &model.Student{StudentID: "stu-001", Name: "김민준"}

	// 3/1 两节수업 → 一个事件；상담 不产生事件
	logs.logs["log-1"] = &model.SessionLog{
		LogID: "log-1", StudentID: "stu-001", Kind: model.KindLesson,
		Text: "수업 1", CreatedAt: seoulTime(t, "2026-03-01 10:00"),
	}
	logs.logs["log-2"] = &model.SessionLog{
		LogID: "log-2", StudentID: "stu-001", Kind: model.KindLesson,
		Text: "수업 2", CreatedAt: seoulTime(t, "2026-03-01 18:00"),
	}
	logs.logs["log-3"] = &model.SessionLog{
		LogID: "log-3", StudentID: "stu-001", Kind: model.KindConsultation,
		Text: "상담", CreatedAt: seoulTime(t, "2026-03-05 11:00"),
	}

	data, filename, err := svc.ExportAttendanceICS(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "김민준_출석.ics" {
		t.Errorf("期望文件名=김민준_출석.ics，实际=%s", filename)
	}

	content := string(data)
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Fatal("应输出 iCalendar 格式")
	}
	if got := strings.Count(content, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("期望 1 个事件（同日合并、상담 不计），实际=%d", got)
	}
	if !strings.Contains(content, "attendance-stu-001-2026-03-01") {
		t.Error("事件 UID 应包含学生 ID 与日期")
	}
}
