package model

type ExerciseType string

const (
	MultipleChoice        ExerciseType = "MULTIPLE_CHOICE"
	FillInBlank           ExerciseType = "FILL_IN_BLANK"
	VocabularyCheck       ExerciseType = "VOCABULARY_CHECK"
	SentenceOrder         ExerciseType = "SENTENCE_ORDER"
	PronunciationPractice ExerciseType = "PRONUNCIATION_PRACTICE"
)

// swagger:model Exercise
type Exercise struct {
	BaseModel
	LessonID    uint             `gorm:"index;not null" json:"lessonId"`
	Type        ExerciseType     `gorm:"size:32;not null" json:"type"`
	Question    string           `gorm:"type:text" json:"question"`
	Instruction string           `gorm:"type:text" json:"instruction"`
	Order       int              `gorm:"column:sort_order;not null" json:"order"`
	XPReward    int              `gorm:"default:1;not null" json:"xpReward"`
	TimeLimit   *int             `json:"timeLimit,omitempty"` // 秒
	Options     []ExerciseOption `gorm:"foreignKey:ExerciseID" json:"exerciseOptions,omitempty"`
	Lesson      *Lesson          `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// swagger:model ExerciseOption
type ExerciseOption struct {
	BaseModel
	ExerciseID  uint   `gorm:"index;not null" json:"exerciseId"`
	Text        string `gorm:"size:512;not null" json:"text"`
	IsCorrect   bool   `gorm:"default:false" json:"isCorrect"`
	Order       int    `gorm:"column:sort_order;default:0" json:"order"`
	ImageSrc    string `gorm:"size:255" json:"imageSrc,omitempty"`
	AudioSrc    string `gorm:"size:255" json:"audioSrc,omitempty"`
	Explanation string `gorm:"type:text" json:"explanation,omitempty"`
}

func (ExerciseOption) TableName() string {
	return "exercise_options"
}
