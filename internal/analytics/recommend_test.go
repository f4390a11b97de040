package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

func TestRecommend_NoConsultation(t *testing.T) {
	rec := Recommend(nil, nil, time.UTC)

	if rec.Summary != noConsultationSummary {
		t.Errorf("无상담记录时期望固定摘要 %q，实际 %q", noConsultationSummary, rec.Summary)
	}
	if rec.Suggestion != noWeaknessSuggestion {
		t.Errorf("无弱点时期望通用提示，实际 %q", rec.Suggestion)
	}
}

func TestRecommend_SummaryTruncation(t *testing.T) {
	longText := strings.Repeat("가", 80)
	consultations := []model.SessionLog{
		{Kind: model.KindConsultation, Text: longText, CreatedAt: time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)},
	}

	rec := Recommend(nil, consultations, time.UTC)

	if !strings.HasPrefix(rec.Summary, "2026-03-15: ") {
		t.Errorf("摘要应以日期开头: %q", rec.Summary)
	}
	if !strings.Contains(rec.Summary, strings.Repeat("가", 50)+"...") {
		t.Errorf("80 字文本应截断到 50 字并附省略号: %q", rec.Summary)
	}
	if strings.Contains(rec.Summary, strings.Repeat("가", 51)) {
		t.Errorf("摘要不应包含超过 50 字的原文: %q", rec.Summary)
	}
}

func TestRecommend_ShortSummaryNotTruncated(t *testing.T) {
	consultations := []model.SessionLog{
		{Kind: model.KindConsultation, Text: "진로 상담", CreatedAt: time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)},
	}

	rec := Recommend(nil, consultations, time.UTC)

	if strings.Contains(rec.Summary, "...") {
		t.Errorf("50 字以内不应截断: %q", rec.Summary)
	}
	if !strings.Contains(rec.Summary, "진로 상담") {
		t.Errorf("摘要应包含原文: %q", rec.Summary)
	}
}

func TestRecommend_UsesLatestConsultation(t *testing.T) {
	// 输入从新到旧，应取第一条
	consultations := []model.SessionLog{
		{Kind: model.KindConsultation, Text: "최근 상담", CreatedAt: time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC)},
		{Kind: model.KindConsultation, Text: "옛날 상담", CreatedAt: time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)},
	}

	rec := Recommend(nil, consultations, time.UTC)

	if !strings.Contains(rec.Summary, "최근 상담") {
		t.Errorf("应摘要最新一条상담: %q", rec.Summary)
	}
}

func TestRecommend_SuggestionFromRecentFiveLessons(t *testing.T) {
	// 6 条 수업 기록（从新到旧），第 6 条的标签不应进入建议
	lessons := []model.SessionLog{
		{Kind: model.KindLesson, Tags: model.StringArray{"분수"}},
		{Kind: model.KindLesson, Tags: model.StringArray{"제곱근", "분수"}},
		{Kind: model.KindLesson, Tags: nil},
		{Kind: model.KindLesson, Tags: model.StringArray{"연산속도"}},
		{Kind: model.KindLesson, Tags: nil},
		{Kind: model.KindLesson, Tags: model.StringArray{"역수"}},
	}

	rec := Recommend(lessons, nil, time.UTC)

	for _, tag := range []string{"분수", "제곱근", "연산속도"} {
		if !strings.Contains(rec.Suggestion, tag) {
			t.Errorf("建议中应包含标签 %q: %q", tag, rec.Suggestion)
		}
	}
	if strings.Contains(rec.Suggestion, "역수") {
		t.Errorf("窗口外（第 6 条）的标签不应出现: %q", rec.Suggestion)
	}
	// 去重：분수 在两条记录中出现，建议里只应出现一次
	if strings.Count(rec.Suggestion, "분수") != 1 {
		t.Errorf("重复标签应去重: %q", rec.Suggestion)
	}
}
