package progression

import (
	"sort"

	"lingua_backend/internal/model"
)

type CourseStatus string

const (
	StatusLocked   CourseStatus = "locked"
	StatusLearn    CourseStatus = "learn"
	StatusContinue CourseStatus = "continue"
	StatusPractice CourseStatus = "practice"
)

// ActionLabel 课程状态对应的按钮文案
func (s CourseStatus) ActionLabel() string {
	switch s {
	case StatusLearn:
		return "START"
	case StatusContinue:
		return "CONTINUE"
	case StatusPractice:
		return "PRACTICE"
	default:
		return "LOCKED"
	}
}

// ResolveLessons 课时严格顺序解锁：第一个总是解锁，之后的课时在前一个未完成时锁定。
// 返回 lessonID -> isLocked。
func ResolveLessons(lessons []model.Lesson, table ProgressTable) map[uint]bool {
	idx := make([]int, len(lessons))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return lessonLess(&lessons[idx[a]], &lessons[idx[b]])
	})

	locked := make(map[uint]bool, len(lessons))
	for pos, i := range idx {
		if pos == 0 {
			locked[lessons[i].ID] = false
			continue
		}
		prev := lessons[idx[pos-1]]
		locked[lessons[i].ID] = !table.Lessons[prev.ID].IsCompleted
	}
	return locked
}

// ResolveModules 有前置依赖的模块在任一前置未完成时锁定（缺失的前置视为未完成），
// 没有前置依赖的模块退回与课时相同的顺序解锁。返回 moduleID -> isLocked。
func ResolveModules(modules []model.Module, table ProgressTable) map[uint]bool {
	idx := make([]int, len(modules))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return moduleLess(&modules[idx[a]], &modules[idx[b]])
	})

	locked := make(map[uint]bool, len(modules))
	for pos, i := range idx {
		m := modules[i]
		if len(m.Prerequisites) > 0 {
			locked[m.ID] = !prerequisitesMet(m.Prerequisites, table)
			continue
		}
		if pos == 0 {
			locked[m.ID] = false
			continue
		}
		prev := modules[idx[pos-1]]
		locked[m.ID] = !table.Modules[prev.ID].IsCompleted
	}
	return locked
}

func prerequisitesMet(prereqs []model.ModulePrerequisite, table ProgressTable) bool {
	for _, p := range prereqs {
		progress, ok := table.Modules[p.PrerequisiteID]
		if !ok || !progress.IsCompleted {
			return false
		}
	}
	return true
}

// ResolveCourses 按 order 顺序一次遍历，前一门课程的进度向后传递。
// 返回 courseID -> status。
func ResolveCourses(courses []model.Course, table ProgressTable) map[uint]CourseStatus {
	idx := make([]int, len(courses))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ca, cb := &courses[idx[a]], &courses[idx[b]]
		if ca.Order != cb.Order {
			return ca.Order < cb.Order
		}
		return ca.ID < cb.ID
	})

	statuses := make(map[uint]CourseStatus, len(courses))
	var prev Progress
	for pos, i := range idx {
		own := table.Courses[courses[i].ID]
		statuses[courses[i].ID] = courseStatus(pos == 0, own, prev)
		prev = own
	}
	return statuses
}

func courseStatus(first bool, own, prev Progress) CourseStatus {
	if first {
		if own.Progress > 0 {
			return StatusContinue
		}
		return StatusLearn
	}

	if prev.Progress > 0 {
		if own.IsCompleted {
			return StatusPractice
		}
		return StatusContinue
	}
	if prev.IsCompleted {
		return StatusLearn
	}
	return StatusLocked
}

func lessonLess(a, b *model.Lesson) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.ID < b.ID
}

func moduleLess(a, b *model.Module) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.ID < b.ID
}
