package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hws4444-design/mathclinic-crm/internal/analytics"
	"github.com/hws4444-design/mathclinic-crm/internal/model"
	"github.com/hws4444-design/mathclinic-crm/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：Sheet "학생 정보"（档案）+ Sheet "기록"（全部记录，新→旧）
//   - 出勤导出为 iCalendar 订阅：每个出勤日一个全天 VEVENT，
//     可直接导入家长端日历应用
type ExportService interface {
	// ExportStudentExcel 导出单个学生的档案与记录为 Excel
	ExportStudentExcel(ctx context.Context, studentID string) (*bytes.Buffer, string, error)
	// ExportAttendanceICS 导出学生出勤日为 iCalendar
	ExportAttendanceICS(ctx context.Context, studentID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportStudentExcel — 导出学生档案为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "학생 정보"：字段名/值两列
//   - Sheet "기록"：날짜 | 구분 | 내용 | 태그（新→旧）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportStudentExcel(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, "", err
	}

	logs, err := s.repo.Log.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询记录失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// Sheet 1: 学生档案
	profileSheet := "학생 정보"
	idx, _ := f.NewSheet(profileSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(profileSheet, "A", "A", 16)
	f.SetColWidth(profileSheet, "B", "B", 40)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	billingText := "횟수제"
	if student.BillingMode == model.BillingModeDate {
		billingText = "기간제"
	}
	planEnd := "-"
	if student.PlanEndDate != nil {
		planEnd = student.PlanEndDate.In(s.loc).Format("2006-01-02")
	}

	profileRows := [][2]string{
		{"이름", student.Name},
		{"학교", student.School},
		{"학년", student.Grade},
		{"학습 목표", student.Goal},
		{"학생 연락처", student.StudentPhone},
		{"보호자 이름", student.GuardianName},
		{"보호자 연락처", student.GuardianPhone},
		{"결제 방식", billingText},
		{"총 수업 횟수", fmt.Sprintf("%d", student.TotalSessions)},
		{"수강 종료일", planEnd},
		{"상담 메모", student.IntakeNotes},
	}
	for i, pr := range profileRows {
		f.SetCellValue(profileSheet, cell("A", i+1), pr[0])
		f.SetCellValue(profileSheet, cell("B", i+1), pr[1])
	}
	f.SetCellStyle(profileSheet, "A1", cell("A", len(profileRows)), headerStyle)

	// Sheet 2: 全部记录（仓储层已按 created_at 倒序返回）
	logSheet := "기록"
	f.NewSheet(logSheet)
	f.SetColWidth(logSheet, "A", "A", 12)
	f.SetColWidth(logSheet, "B", "B", 8)
	f.SetColWidth(logSheet, "C", "C", 60)
	f.SetColWidth(logSheet, "D", "D", 24)

	headers := []string{"날짜", "구분", "내용", "태그"}
	for i, h := range headers {
		f.SetCellValue(logSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(logSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for _, l := range logs {
		kindText := "수업"
		if l.Kind == model.KindConsultation {
			kindText = "상담"
		}
		f.SetCellValue(logSheet, cell("A", row), l.CreatedAt.In(s.loc).Format("2006-01-02"))
		f.SetCellValue(logSheet, cell("B", row), kindText)
		f.SetCellValue(logSheet, cell("C", row), l.Text)
		f.SetCellValue(logSheet, cell("D", row), strings.Join(l.Tags, ", "))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_기록.xlsx", student.Name)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportAttendanceICS — 导出出勤日为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个出勤日生成一个全天事件，UID 为 "attendance-<学生ID>-<日期>"，
// 同一天多条课程记录只产生一个事件（与出勤推导一致）。

func (s *exportService) ExportAttendanceICS(ctx context.Context, studentID string) ([]byte, string, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, "", err
	}

	logs, err := s.repo.Log.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询记录失败", zap.Error(err))
		return nil, "", err
	}

	lessons, _ := analytics.Split(logs)
	days := analytics.AttendedDays(lessons, s.loc).Days()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//mathclinic-crm//attendance//KO")

	for _, day := range days {
		start, err := time.ParseInLocation("2006-01-02", day, s.loc)
		if err != nil {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("attendance-%s-%s", student.StudentID, day))
		evt.SetAllDayStartAt(start)
		evt.SetAllDayEndAt(start.AddDate(0, 0, 1))
		evt.SetSummary(fmt.Sprintf("%s 수업 출석", student.Name))
		evt.SetDtStampTime(time.Now())
	}

	filename := fmt.Sprintf("%s_출석.ics", student.Name)
	return []byte(cal.Serialize()), filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
