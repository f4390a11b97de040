package analytics

import (
	"testing"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

func TestPlanGoalUpdate_Changed(t *testing.T) {
	audit := PlanGoalUpdate("stu-1", "fractions", "functions")

	if audit == nil {
		t.Fatal("目标变更应生成审计记录")
	}
	if audit.Text != "goal changed: fractions -> functions" {
		t.Errorf("审计文本不符合模板: %q", audit.Text)
	}
	if len(audit.Tags) != 1 || audit.Tags[0] != LabelGoalChange {
		t.Errorf("期望保留标签 %q，实际 %v", LabelGoalChange, audit.Tags)
	}
	if audit.Kind != model.KindConsultation {
		t.Errorf("审计记录 kind 期望 consultation，实际 %s", audit.Kind)
	}
	if audit.StudentID != "stu-1" {
		t.Errorf("审计记录应归属 stu-1，实际 %s", audit.StudentID)
	}
}

func TestPlanGoalUpdate_Unchanged(t *testing.T) {
	if audit := PlanGoalUpdate("stu-1", "functions", "functions"); audit != nil {
		t.Errorf("目标未变更不应生成审计记录: %+v", audit)
	}
}

func TestPlanGoalUpdate_ExactStringComparison(t *testing.T) {
	// 精确比较，不做 trim：尾部空格视为变更
	if audit := PlanGoalUpdate("stu-1", "functions", "functions "); audit == nil {
		t.Error("仅空白差异也应视为变更（不做归一化）")
	}
}
