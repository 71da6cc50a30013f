package model

import (
	"time"
)

const (
	DefaultLevel  = 1
	DefaultHearts = 5
)

// swagger:model User
type User struct {
	UUIDBase
	Email     string     `gorm:"size:191;index" json:"email"`
	Username  string     `gorm:"size:100" json:"username"`
	FirstName string     `gorm:"size:100" json:"firstName"`
	LastName  string     `gorm:"size:100" json:"lastName"`
	XP        int        `gorm:"default:0;not null" json:"xp"`     // 累计经验，只增不减
	Level     int        `gorm:"default:1;not null" json:"level"`  // 由 XP 推导
	Streak    int        `gorm:"default:0;not null" json:"streak"` // 连续答对次数
	Hearts    int        `gorm:"default:5;not null" json:"hearts"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
