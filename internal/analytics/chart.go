package analytics

import (
	"fmt"
	"time"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// SeriesPoint 弱点发现趋势图的单个数据点
type SeriesPoint struct {
	Day      string `json:"day"`       // 月/日 标签，如 "3/1"
	TagCount int    `json:"tag_count"` // 当日各记录标签数之和
}

// Series 将 수업 기록 按日历日分桶并汇总标签数，按时间升序返回。
//
// 输入为存储层的从新到旧顺序：先按首次出现顺序分组（即从新到旧），
// 最后整体反转得到升序。稀疏序列：没有记录的日期不补零，
// 标签数合计为 0 的日期也不出现在序列中。
func Series(lessonLogs []model.SessionLog, loc *time.Location) []SeriesPoint {
	counts := make(map[string]int, len(lessonLogs))
	var order []string // 日标签按首次出现顺序（新→旧）
	for _, l := range lessonLogs {
		t := l.CreatedAt.In(loc)
		day := fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
		if _, ok := counts[day]; !ok {
			order = append(order, day)
		}
		counts[day] += len(l.Tags)
	}

	points := make([]SeriesPoint, 0, len(order))
	// 反转为时间升序
	for i := len(order) - 1; i >= 0; i-- {
		if counts[order[i]] == 0 {
			continue
		}
		points = append(points, SeriesPoint{Day: order[i], TagCount: counts[order[i]]})
	}
	return points
}
