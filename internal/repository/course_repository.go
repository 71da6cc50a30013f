package repository

import (
	"context"

	"lingua_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func bySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}

// FindAllWithHierarchy 一次性加载 课程 -> 模块(含前置) -> 课时 -> 练习ID 的完整层级。
// 练习只取进度汇总需要的列。
func (r *CourseRepository) FindAllWithHierarchy(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).
		Scopes(bySortOrder).
		Preload("Modules", bySortOrder).
		Preload("Modules.Prerequisites").
		Preload("Modules.Lessons", bySortOrder).
		Preload("Modules.Lessons.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "lesson_id", "sort_order").Scopes(bySortOrder)
		}).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Count(&count).Error
	return count, err
}
