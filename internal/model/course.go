package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Level       string   `gorm:"size:32" json:"level"` // A1_1, A1_2 ...
	ImageSrc    string   `gorm:"size:255" json:"imageSrc"`
	Order       int      `gorm:"column:sort_order;uniqueIndex;not null" json:"order"`
	Modules     []Module `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Module
type Module struct {
	BaseModel
	CourseID      uint                 `gorm:"index;not null" json:"courseId"`
	Title         string               `gorm:"size:255;not null" json:"title"`
	Description   string               `gorm:"type:text" json:"description"`
	Order         int                  `gorm:"column:sort_order;not null" json:"order"`
	XPReward      int                  `gorm:"default:0" json:"xpReward"`
	EstimatedTime int                  `gorm:"default:0" json:"estimatedTime"` // 分钟
	Lessons       []Lesson             `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
	Prerequisites []ModulePrerequisite `gorm:"foreignKey:ModuleID" json:"prerequisites,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// ModulePrerequisite 模块间的前置依赖边，整体应构成 DAG
// swagger:model ModulePrerequisite
type ModulePrerequisite struct {
	ID             uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ModuleID       uint `gorm:"uniqueIndex:idx_module_prerequisite;not null" json:"moduleId"`
	PrerequisiteID uint `gorm:"uniqueIndex:idx_module_prerequisite;not null" json:"prerequisiteId"`
}

func (ModulePrerequisite) TableName() string {
	return "module_prerequisites"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID      uint       `gorm:"index;not null" json:"moduleId"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Order         int        `gorm:"column:sort_order;not null" json:"order"`
	XPReward      int        `gorm:"default:5" json:"xpReward"` // 仅用于展示，计分以练习为准
	EstimatedTime int        `gorm:"default:0" json:"estimatedTime"`
	Exercises     []Exercise `gorm:"foreignKey:LessonID" json:"exercises,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
