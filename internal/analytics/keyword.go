package analytics

import (
	"sort"
	"strings"
)

// ── 弱点关键词表 ──────────────────────────────────────────────
//
// 职责：将自由文本映射为弱点标签。
//
// 设计决策：
//   - 表是有序的 (keyword, label) 列表，顺序即展示顺序与并列打破顺序
//   - 多个关键词可映射到同一标签（如 느림/빠르지 → 연산속도）
//   - 单条记录打标签 = 子串是否出现（集合语义）
//   - 学生级弱点排名 = 子串出现次数计数（多重集语义），两者算法不同
//   - 表可由配置注入，测试可替换 fixture
// ─────────────────────────────────────────────────────────────

// LabelGoalChange 目标变更审计记录的保留标签，不由关键词派生
const LabelGoalChange = "goal-change"

// topWeaknessLimit 学生列表页展示的弱点标签数上限
const topWeaknessLimit = 3

// KeywordRule 关键词 → 标签 映射项
type KeywordRule struct {
	Keyword string
	Label   string
}

// KeywordTable 有序关键词表
type KeywordTable []KeywordRule

// DefaultKeywordTable 内置关键词表（韩语数学辅导场景）
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		{Keyword: "제곱근", Label: "제곱근"},
		{Keyword: "분수", Label: "분수"},
		{Keyword: "역수", Label: "역수"},
		{Keyword: "느림", Label: "연산속도"},
		{Keyword: "빠르지", Label: "연산속도"},
		{Keyword: "어설픔", Label: "개념부족"},
		{Keyword: "설명", Label: "서술형"},
		{Keyword: "이유", Label: "서술형"},
		{Keyword: "헷갈", Label: "개념혼동"},
		{Keyword: "오답", Label: "오답패턴"},
		{Keyword: "실수", Label: "단순실수"},
	}
}

// ExtractTags 从单条记录文本提取弱点标签。
// 按表顺序逐项检查子串是否出现；同一标签只出现一次，
// 结果顺序为关键词表中首个命中项的声明顺序。纯函数。
func ExtractTags(text string, table KeywordTable) []string {
	if text == "" {
		return nil
	}
	seen := make(map[string]bool, len(table))
	var tags []string
	for _, rule := range table {
		if seen[rule.Label] {
			continue
		}
		if strings.Contains(text, rule.Keyword) {
			seen[rule.Label] = true
			tags = append(tags, rule.Label)
		}
	}
	return tags
}

// TopWeaknesses 统计学生全部记录文本中各标签关键词的出现总次数，
// 返回次数最多的前 3 个标签。并列时按关键词表声明顺序优先。
//
// 与 ExtractTags 不同：这里按（非重叠）出现次数计数而非是否出现，
// 一段文本里反复出现的弱点权重更高。
func TopWeaknesses(texts []string, table KeywordTable) []string {
	if len(texts) == 0 {
		return nil
	}
	allText := strings.Join(texts, " ")

	counts := make(map[string]int, len(table))
	var order []string // 标签按首次声明顺序
	for _, rule := range table {
		if _, ok := counts[rule.Label]; !ok {
			counts[rule.Label] = 0
			order = append(order, rule.Label)
		}
		counts[rule.Label] += strings.Count(allText, rule.Keyword)
	}

	var hit []string
	for _, label := range order {
		if counts[label] > 0 {
			hit = append(hit, label)
		}
	}

	// 稳定排序：次数降序，并列保持声明顺序
	sort.SliceStable(hit, func(i, j int) bool {
		return counts[hit[i]] > counts[hit[j]]
	})

	if len(hit) > topWeaknessLimit {
		hit = hit[:topWeaknessLimit]
	}
	return hit
}
