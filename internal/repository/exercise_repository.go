package repository

import (
	"context"
	"errors"

	"lingua_backend/internal/model"
	"lingua_backend/internal/util"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

// FindByIDWithAnswers 含正确答案标记，仅供判题使用
func (r *ExerciseRepository) FindByIDWithAnswers(ctx context.Context, id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.WithContext(ctx).
		Preload("Options", bySortOrder).
		Preload("Lesson").
		First(&exercise, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) FindLessonWithExercises(ctx context.Context, lessonID uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).
		Preload("Exercises", bySortOrder).
		Preload("Exercises.Options", bySortOrder).
		First(&lesson, lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *ExerciseRepository) CountByLesson(ctx context.Context, tx *gorm.DB, lessonID uint) (int64, error) {
	if tx == nil {
		tx = r.DB
	}
	var count int64
	err := tx.WithContext(ctx).Model(&model.Exercise{}).Where("lesson_id = ?", lessonID).Count(&count).Error
	return count, err
}
