package analytics

import (
	"sort"
	"time"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// dayFormat 日历日的规范表示
const dayFormat = "2006-01-02"

// AttendanceSet 出勤日集合（日历日 → 出勤），同一天多条记录合并为一次出勤
type AttendanceSet map[string]struct{}

// AttendedDays 从 수업 기록 推导出勤日集合。
// 仅 lesson 记录计入出勤；createdAt 按 loc 时区截断到日历日。幂等。
func AttendedDays(lessonLogs []model.SessionLog, loc *time.Location) AttendanceSet {
	set := make(AttendanceSet, len(lessonLogs))
	for _, l := range lessonLogs {
		set[l.CreatedAt.In(loc).Format(dayFormat)] = struct{}{}
	}
	return set
}

// IsAttended 指定日历日是否有课（供日历渲染逐格查询）
func (s AttendanceSet) IsAttended(day time.Time, loc *time.Location) bool {
	_, ok := s[day.In(loc).Format(dayFormat)]
	return ok
}

// Days 按日期升序返回全部出勤日（"2006-01-02" 格式）
func (s AttendanceSet) Days() []string {
	days := make([]string, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}
