// Package testutil 提供基于内存 SQLite 的测试数据库
package testutil

import (
	"testing"

	"lingua_backend/internal/config"
	"lingua_backend/internal/model"
	"lingua_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 每个测试独立的内存库，已完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewSeededDB 在 NewDB 基础上写入演示课程
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	require.NoError(t, database.Seed(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, id string) *model.User {
	t.Helper()
	user := &model.User{
		UUIDBase: model.UUIDBase{ID: id},
		Email:    id + "@example.com",
		Username: id,
		Level:    model.DefaultLevel,
		Hearts:   model.DefaultHearts,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// FindExercise 按题干查找演示数据中的练习
func FindExercise(t *testing.T, db *gorm.DB, question string) *model.Exercise {
	t.Helper()
	var ex model.Exercise
	require.NoError(t, db.Preload("Options").Where("question = ?", question).First(&ex).Error)
	return &ex
}

func CorrectOption(t *testing.T, ex *model.Exercise) model.ExerciseOption {
	t.Helper()
	for _, o := range ex.Options {
		if o.IsCorrect {
			return o
		}
	}
	t.Fatalf("exercise %d has no correct option", ex.ID)
	return model.ExerciseOption{}
}

func WrongOption(t *testing.T, ex *model.Exercise) model.ExerciseOption {
	t.Helper()
	for _, o := range ex.Options {
		if !o.IsCorrect {
			return o
		}
	}
	t.Fatalf("exercise %d has no wrong option", ex.ID)
	return model.ExerciseOption{}
}
