package model

import (
	"time"
)

// ExerciseProgress 完成台账：每个 (user, exercise) 至多一行，只更新不删除
// swagger:model ExerciseProgress
type ExerciseProgress struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	UserID      string     `gorm:"size:64;not null;uniqueIndex:idx_user_exercise" json:"userId"`
	ExerciseID  uint       `gorm:"not null;uniqueIndex:idx_user_exercise;index" json:"exerciseId"`
	Completed   bool       `gorm:"default:false;not null" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Attempts    int        `gorm:"default:0;not null" json:"attempts"`
	Score       int        `gorm:"default:0;not null" json:"score"`
}

func (ExerciseProgress) TableName() string {
	return "exercise_progress"
}
