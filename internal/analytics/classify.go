package analytics

import "github.com/hws4444-design/mathclinic-crm/internal/model"

// Split 将学生的记录稳定划分为 수업/상담 两组。
// 存储层按创建时间从新到旧返回，两个子序列均保持输入顺序，不重排。
// kind 缺省按 lesson 处理。
func Split(logs []model.SessionLog) (lessons, consultations []model.SessionLog) {
	for _, l := range logs {
		if l.IsLesson() {
			lessons = append(lessons, l)
		} else {
			consultations = append(consultations, l)
		}
	}
	return lessons, consultations
}
