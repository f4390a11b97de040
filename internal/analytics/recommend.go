package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// ── 상담 전 추천 요약 ──

const (
	// summaryMaxRunes 摘要引用的상담文本最大长度（按 rune 计，韩文友好）
	summaryMaxRunes = 50

	// noConsultationSummary 尚无상담记录时的固定摘要
	noConsultationSummary = "아직 상담 기록이 없습니다."

	// noWeaknessSuggestion 最近수업未发现弱点时的固定提示
	noWeaknessSuggestion = "최근 발견된 약점이 없습니다. 학습 목표와 만족도를 점검해보세요."

	// recentLessonWindow 推荐聚焦时回看的最近수업条数
	recentLessonWindow = 5
)

// Recommendation 상담 전 요약：最近상담摘要 + 建议聚焦点
type Recommendation struct {
	Summary    string `json:"summary"`
	Suggestion string `json:"suggestion"`
}

// Recommend 生成상담 전 추천。不落库，每次请求基于最新记录重算。
//
// Summary：存在상담记录时取最新一条，格式 `<date>: "<前50字>…"`，
// 超长截断并附省略号；否则固定提示。
// Suggestion：取最近 5 条 수업 기록（输入即从新到旧）的标签，
// 按首次出现顺序去重；非空时套用固定句式，否则给出通用提示。
func Recommend(lessonLogs, consultationLogs []model.SessionLog, loc *time.Location) Recommendation {
	rec := Recommendation{
		Summary:    noConsultationSummary,
		Suggestion: noWeaknessSuggestion,
	}

	if len(consultationLogs) > 0 {
		latest := consultationLogs[0]
		text := []rune(latest.Text)
		quoted := string(text)
		if len(text) > summaryMaxRunes {
			quoted = string(text[:summaryMaxRunes]) + "..."
		}
		rec.Summary = fmt.Sprintf("%s: %q", latest.CreatedAt.In(loc).Format(dayFormat), quoted)
	}

	window := lessonLogs
	if len(window) > recentLessonWindow {
		window = window[:recentLessonWindow]
	}
	seen := make(map[string]bool)
	var tags []string
	for _, l := range window {
		for _, t := range l.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	if len(tags) > 0 {
		rec.Suggestion = fmt.Sprintf("최근 수업에서 %s 약점이 반복되고 있습니다. 이번 상담에서 집중적으로 다뤄보세요.", strings.Join(tags, ", "))
	}

	return rec
}
