package analytics

import (
	"testing"
	"time"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

func TestCalcProgress_CountModeExhausted(t *testing.T) {
	student := &model.Student{BillingMode: model.BillingModeCount, TotalSessions: 8}

	p := CalcProgress(student, 8)

	if p.Remaining != 0 {
		t.Errorf("期望 remaining=0，实际 %d", p.Remaining)
	}
	if !p.Exhausted {
		t.Error("8/8 应为 exhausted")
	}
}

func TestCalcProgress_CountModeInProgress(t *testing.T) {
	student := &model.Student{BillingMode: model.BillingModeCount, TotalSessions: 8}

	p := CalcProgress(student, 3)

	if p.Current != 3 || p.Remaining != 5 {
		t.Errorf("期望 current=3 remaining=5，实际 current=%d remaining=%d", p.Current, p.Remaining)
	}
	if p.Exhausted {
		t.Error("3/8 不应 exhausted")
	}
	if !p.Capped {
		t.Error("total=8 应视为设了上限")
	}
}

func TestCalcProgress_ZeroTotalNeverExhausted(t *testing.T) {
	student := &model.Student{BillingMode: model.BillingModeCount, TotalSessions: 0}

	for _, count := range []int{0, 5, 100} {
		p := CalcProgress(student, count)
		if p.Exhausted {
			t.Errorf("total=0 视为不设上限，count=%d 时不应 exhausted", count)
		}
		if p.Capped {
			t.Errorf("total=0 时不应展示进度 (count=%d)", count)
		}
	}
}

func TestCalcProgress_OverCap(t *testing.T) {
	student := &model.Student{BillingMode: model.BillingModeCount, TotalSessions: 2}

	// 上限已满后确认保存第 3 条，进度允许为负
	p := CalcProgress(student, 3)

	if p.Current != 3 || p.Remaining != -1 {
		t.Errorf("期望 current=3 remaining=-1，实际 current=%d remaining=%d", p.Current, p.Remaining)
	}
	if !p.Exhausted {
		t.Error("超出上限应保持 exhausted")
	}
}

func TestCalcProgress_DateMode(t *testing.T) {
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	student := &model.Student{BillingMode: model.BillingModeDate, PlanEndDate: &end}

	p := CalcProgress(student, 12)

	if p.Mode != model.BillingModeDate {
		t.Errorf("期望 date 模式，实际 %s", p.Mode)
	}
	if p.PlanEndDate == nil || !p.PlanEndDate.Equal(end) {
		t.Errorf("期望返回截止日 %v，实际 %v", end, p.PlanEndDate)
	}
	// date 模式不计算数值进度、不评估 exhausted
	if p.Exhausted || p.Capped || p.Current != 0 {
		t.Errorf("date 模式不应产生数值进度: %+v", p)
	}
}
