package repository

import (
	"context"
	"time"

	"lingua_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExerciseProgressRepository 完成台账，保证每个 (user, exercise) 至多一行
type ExerciseProgressRepository struct {
	DB *gorm.DB
}

func NewExerciseProgressRepository(db *gorm.DB) *ExerciseProgressRepository {
	return &ExerciseProgressRepository{DB: db}
}

func (r *ExerciseProgressRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.DB
}

// GetOrCreate 插入冲突时忽略，随后加锁读取该行。created 表示本次调用创建了记录。
func (r *ExerciseProgressRepository) GetOrCreate(ctx context.Context, tx *gorm.DB, userID string, exerciseID uint) (*model.ExerciseProgress, bool, error) {
	db := r.conn(tx).WithContext(ctx)

	row := model.ExerciseProgress{UserID: userID, ExerciseID: exerciseID}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected == 1

	var progress model.ExerciseProgress
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		First(&progress).Error
	if err != nil {
		return nil, false, err
	}
	return &progress, created, nil
}

// MarkCompleted 条件写入：仅当该行尚未完成时置为完成。
// 返回 true 表示本次调用赢得了这次状态转换，只有赢家可以发放奖励。
func (r *ExerciseProgressRepository) MarkCompleted(ctx context.Context, tx *gorm.DB, id uint, at time.Time, score int) (bool, error) {
	res := r.conn(tx).WithContext(ctx).
		Model(&model.ExerciseProgress{}).
		Where("id = ? AND completed = ?", id, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": at,
			"score":        score,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ExerciseProgressRepository) RecordAttempt(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).
		Model(&model.ExerciseProgress{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + ?", 1)).Error
}

// CompletedExerciseIDs 返回用户已完成的全部练习 ID
func (r *ExerciseProgressRepository) CompletedExerciseIDs(ctx context.Context, userID string) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&model.ExerciseProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Pluck("exercise_id", &ids).Error
	return ids, err
}

func (r *ExerciseProgressRepository) FindByUserAndExercises(ctx context.Context, userID string, exerciseIDs []uint) ([]model.ExerciseProgress, error) {
	var rows []model.ExerciseProgress
	if len(exerciseIDs) == 0 {
		return rows, nil
	}
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND exercise_id IN ?", userID, exerciseIDs).
		Find(&rows).Error
	return rows, err
}

// CountCompletedInLesson 统计用户在某课时内已完成的练习数
func (r *ExerciseProgressRepository) CountCompletedInLesson(ctx context.Context, tx *gorm.DB, userID string, lessonID uint) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&model.ExerciseProgress{}).
		Joins("JOIN exercises ON exercises.id = exercise_progress.exercise_id AND exercises.deleted_at IS NULL").
		Where("exercise_progress.user_id = ? AND exercise_progress.completed = ? AND exercises.lesson_id = ?", userID, true, lessonID).
		Count(&count).Error
	return count, err
}
