package progression

import (
	"sort"

	"lingua_backend/internal/model"
)

type LessonView struct {
	ID            uint   `json:"id"`
	ModuleID      uint   `json:"moduleId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Order         int    `json:"order"`
	XPReward      int    `json:"xpReward"`
	EstimatedTime int    `json:"estimatedTime"`
	Progress
	IsLocked bool `json:"isLocked"`
}

type ModuleView struct {
	ID              uint   `json:"id"`
	CourseID        uint   `json:"courseId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Order           int    `json:"order"`
	XPReward        int    `json:"xpReward"`
	EstimatedTime   int    `json:"estimatedTime"`
	PrerequisiteIDs []uint `json:"prerequisiteIds"`
	Progress
	IsLocked bool         `json:"isLocked"`
	Lessons  []LessonView `json:"lessons"`
}

type CourseView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
	ImageSrc    string `json:"imageSrc"`
	Order       int    `json:"order"`
	Progress
	Status      CourseStatus `json:"status"`
	ActionLabel string       `json:"actionLabel"`
	Modules     []ModuleView `json:"modules"`
}

// BuildTree 在一次遍历中完成汇总与解锁判定，返回按 order 排序的课程视图。
// 课程锁定时其下模块全部锁定，模块锁定时其下课时全部锁定。
func BuildTree(courses []model.Course, completed CompletionSet) []CourseView {
	table := Aggregate(courses, completed)
	statuses := ResolveCourses(courses, table)

	views := make([]CourseView, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		status := statuses[c.ID]
		view := CourseView{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Level:       c.Level,
			ImageSrc:    c.ImageSrc,
			Order:       c.Order,
			Progress:    table.Courses[c.ID],
			Status:      status,
			ActionLabel: status.ActionLabel(),
			Modules:     buildModules(c.Modules, table, status == StatusLocked),
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(a, b int) bool {
		if views[a].Order != views[b].Order {
			return views[a].Order < views[b].Order
		}
		return views[a].ID < views[b].ID
	})
	return views
}

// LockedDefault 读取完成记录失败时的降级视图：按零进度计算，
// 第一门课程之后全部锁定
func LockedDefault(courses []model.Course) []CourseView {
	return BuildTree(courses, nil)
}

func buildModules(modules []model.Module, table ProgressTable, courseLocked bool) []ModuleView {
	locks := ResolveModules(modules, table)

	views := make([]ModuleView, 0, len(modules))
	for i := range modules {
		m := &modules[i]
		locked := courseLocked || locks[m.ID]

		prereqs := make([]uint, 0, len(m.Prerequisites))
		for _, p := range m.Prerequisites {
			prereqs = append(prereqs, p.PrerequisiteID)
		}

		views = append(views, ModuleView{
			ID:              m.ID,
			CourseID:        m.CourseID,
			Title:           m.Title,
			Description:     m.Description,
			Order:           m.Order,
			XPReward:        m.XPReward,
			EstimatedTime:   m.EstimatedTime,
			PrerequisiteIDs: prereqs,
			Progress:        table.Modules[m.ID],
			IsLocked:        locked,
			Lessons:         buildLessons(m.Lessons, table, locked),
		})
	}

	sort.SliceStable(views, func(a, b int) bool {
		if views[a].Order != views[b].Order {
			return views[a].Order < views[b].Order
		}
		return views[a].ID < views[b].ID
	})
	return views
}

func buildLessons(lessons []model.Lesson, table ProgressTable, moduleLocked bool) []LessonView {
	locks := ResolveLessons(lessons, table)

	views := make([]LessonView, 0, len(lessons))
	for i := range lessons {
		l := &lessons[i]
		views = append(views, LessonView{
			ID:            l.ID,
			ModuleID:      l.ModuleID,
			Title:         l.Title,
			Description:   l.Description,
			Order:         l.Order,
			XPReward:      l.XPReward,
			EstimatedTime: l.EstimatedTime,
			Progress:      table.Lessons[l.ID],
			IsLocked:      moduleLocked || locks[l.ID],
		})
	}

	sort.SliceStable(views, func(a, b int) bool {
		if views[a].Order != views[b].Order {
			return views[a].Order < views[b].Order
		}
		return views[a].ID < views[b].ID
	})
	return views
}
