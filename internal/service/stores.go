package service

import (
	"context"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"

	"gorm.io/gorm"
)

// 服务依赖的存储接口，由 repository 包中的 gorm 实现满足。
// tx 为 nil 时使用仓库自身的连接。

type UserStore interface {
	FindByID(ctx context.Context, tx *gorm.DB, id string) (*model.User, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.User, error)
	ApplyReward(ctx context.Context, tx *gorm.DB, id string, upd repository.RewardUpdate) error
	UpsertProfile(ctx context.Context, user *model.User) (*model.User, bool, error)
	FindTopByXP(ctx context.Context, limit int) ([]model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
}

type ExerciseStore interface {
	FindByIDWithAnswers(ctx context.Context, id uint) (*model.Exercise, error)
	FindLessonWithExercises(ctx context.Context, lessonID uint) (*model.Lesson, error)
	CountByLesson(ctx context.Context, tx *gorm.DB, lessonID uint) (int64, error)
}

type LedgerStore interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID string, exerciseID uint) (*model.ExerciseProgress, bool, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, id uint, at time.Time, score int) (bool, error)
	RecordAttempt(ctx context.Context, tx *gorm.DB, id uint) error
	CompletedExerciseIDs(ctx context.Context, userID string) ([]uint, error)
	FindByUserAndExercises(ctx context.Context, userID string, exerciseIDs []uint) ([]model.ExerciseProgress, error)
	CountCompletedInLesson(ctx context.Context, tx *gorm.DB, userID string, lessonID uint) (int64, error)
}

type CourseStore interface {
	FindAllWithHierarchy(ctx context.Context) ([]model.Course, error)
}

var (
	_ UserStore     = (*repository.UserRepository)(nil)
	_ ExerciseStore = (*repository.ExerciseRepository)(nil)
	_ LedgerStore   = (*repository.ExerciseProgressRepository)(nil)
	_ CourseStore   = (*repository.CourseRepository)(nil)
)
