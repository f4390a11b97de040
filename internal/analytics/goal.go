package analytics

import (
	"fmt"

	"github.com/hws4444-design/mathclinic-crm/internal/model"
)

// PlanGoalUpdate 检测学习目标变更并生成审计记录。
//
// 新旧目标按字符串精确比较（不做 trim/归一化）；未变更时返回 nil，
// 调用方不产生任何审计写入。变更时返回一条待插入的 SessionLog：
// 文本为固定模板 "goal changed: <old> -> <new>"，打保留标签
// goal-change，kind 取 consultation（目标调整通常在상담中敲定）。
// 审计记录一经写入不再修改，只能随记录删除操作整条删除。
func PlanGoalUpdate(studentID, oldGoal, newGoal string) *model.SessionLog {
	if oldGoal == newGoal {
		return nil
	}
	return &model.SessionLog{
		StudentID: studentID,
		Text:      fmt.Sprintf("goal changed: %s -> %s", oldGoal, newGoal),
		Tags:      model.StringArray{LabelGoalChange},
		Kind:      model.KindConsultation,
	}
}
