package progression

import "lingua_backend/internal/model"

// Progress 某一层级（课时/模块/课程）的完成统计
type Progress struct {
	Progress           float64 `json:"progress"` // [0,1]
	CompletedExercises int     `json:"completedExercises"`
	TotalExercises     int     `json:"totalExercises"`
	IsCompleted        bool    `json:"isCompleted"`
}

func newProgress(completed, total int) Progress {
	p := Progress{CompletedExercises: completed, TotalExercises: total}
	if total > 0 {
		p.Progress = float64(completed) / float64(total)
		p.IsCompleted = completed == total
	}
	return p
}

// ProgressTable 以实体 ID 为键的进度旁表，不修改层级树本身
type ProgressTable struct {
	Courses map[uint]Progress
	Modules map[uint]Progress
	Lessons map[uint]Progress
}

// CompletionSet 已完成的练习 ID 集合
type CompletionSet map[uint]bool

// Aggregate 自底向上汇总 练习 -> 课时 -> 模块 -> 课程 的完成度。
// 需要传入全部课程，跨课程的模块前置依赖依赖完整的模块表。
func Aggregate(courses []model.Course, completed CompletionSet) ProgressTable {
	table := ProgressTable{
		Courses: make(map[uint]Progress, len(courses)),
		Modules: make(map[uint]Progress),
		Lessons: make(map[uint]Progress),
	}
	for i := range courses {
		table.aggregateCourse(&courses[i], completed)
	}
	return table
}

func (t ProgressTable) aggregateCourse(c *model.Course, completed CompletionSet) (int, int) {
	var done, total int
	for i := range c.Modules {
		d, n := t.aggregateModule(&c.Modules[i], completed)
		done += d
		total += n
	}
	t.Courses[c.ID] = newProgress(done, total)
	return done, total
}

func (t ProgressTable) aggregateModule(m *model.Module, completed CompletionSet) (int, int) {
	var done, total int
	for i := range m.Lessons {
		d, n := t.aggregateLesson(&m.Lessons[i], completed)
		done += d
		total += n
	}
	t.Modules[m.ID] = newProgress(done, total)
	return done, total
}

func (t ProgressTable) aggregateLesson(l *model.Lesson, completed CompletionSet) (int, int) {
	var done int
	for _, ex := range l.Exercises {
		if completed[ex.ID] {
			done++
		}
	}
	total := len(l.Exercises)
	t.Lessons[l.ID] = newProgress(done, total)
	return done, total
}

// LessonProgress 汇总单个课时，用于练习列表接口
func LessonProgress(exercises []model.Exercise, completed CompletionSet) Progress {
	var done int
	for _, ex := range exercises {
		if completed[ex.ID] {
			done++
		}
	}
	return newProgress(done, len(exercises))
}
