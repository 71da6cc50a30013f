package database

import (
	"testing"

	"lingua_backend/internal/config"
	"lingua_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, logger.Silent)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var courses, modules, lessons, exercises, prereqs int64
	db.Model(&model.Course{}).Count(&courses)
	db.Model(&model.Module{}).Count(&modules)
	db.Model(&model.Lesson{}).Count(&lessons)
	db.Model(&model.Exercise{}).Count(&exercises)
	db.Model(&model.ModulePrerequisite{}).Count(&prereqs)

	assert.EqualValues(t, 2, courses)
	assert.EqualValues(t, 3, modules)
	assert.EqualValues(t, 4, lessons)
	assert.EqualValues(t, 7, exercises)
	assert.EqualValues(t, 1, prereqs)
}

func TestSeedCoversEveryExerciseType(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Seed(db))

	var types []string
	require.NoError(t, db.Model(&model.Exercise{}).Distinct("type").Pluck("type", &types).Error)
	assert.ElementsMatch(t, []string{
		string(model.MultipleChoice),
		string(model.FillInBlank),
		string(model.VocabularyCheck),
		string(model.SentenceOrder),
		string(model.PronunciationPractice),
	}, types)
}

func TestSeedPrerequisiteCrossesCourses(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Seed(db))

	var edge model.ModulePrerequisite
	require.NoError(t, db.First(&edge).Error)

	var daily, greetings model.Module
	require.NoError(t, db.First(&daily, edge.ModuleID).Error)
	require.NoError(t, db.First(&greetings, edge.PrerequisiteID).Error)
	assert.Equal(t, "Daily Activities", daily.Title)
	assert.Equal(t, "Greetings and Introductions", greetings.Title)
	assert.NotEqual(t, daily.CourseID, greetings.CourseID)
}
