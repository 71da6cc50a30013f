package repository

import (
	"context"
	"testing"
	"time"

	"lingua_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIsUniquePerUserExercise(t *testing.T) {
	db := testutil.NewSeededDB(t)
	testutil.CreateUser(t, db, "u1")
	ex := testutil.FindExercise(t, db, "What does 'Hallo' mean in English?")
	repo := NewExerciseProgressRepository(db)
	ctx := context.Background()

	first, created, err := repo.GetOrCreate(ctx, nil, "u1", ex.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, first.Completed)

	second, created, err := repo.GetOrCreate(ctx, nil, "u1", ex.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestMarkCompletedOnlyOnce(t *testing.T) {
	db := testutil.NewSeededDB(t)
	testutil.CreateUser(t, db, "u1")
	ex := testutil.FindExercise(t, db, "What does 'Hallo' mean in English?")
	repo := NewExerciseProgressRepository(db)
	ctx := context.Background()

	row, _, err := repo.GetOrCreate(ctx, nil, "u1", ex.ID)
	require.NoError(t, err)

	won, err := repo.MarkCompleted(ctx, nil, row.ID, time.Now(), 100)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.MarkCompleted(ctx, nil, row.ID, time.Now(), 10)
	require.NoError(t, err)
	assert.False(t, won)

	row, _, err = repo.GetOrCreate(ctx, nil, "u1", ex.ID)
	require.NoError(t, err)
	assert.True(t, row.Completed)
	assert.NotNil(t, row.CompletedAt)
	assert.Equal(t, 100, row.Score)
}

func TestRecordAttempt(t *testing.T) {
	db := testutil.NewSeededDB(t)
	testutil.CreateUser(t, db, "u1")
	ex := testutil.FindExercise(t, db, "What does 'Hallo' mean in English?")
	repo := NewExerciseProgressRepository(db)
	ctx := context.Background()

	row, _, err := repo.GetOrCreate(ctx, nil, "u1", ex.ID)
	require.NoError(t, err)
	require.NoError(t, repo.RecordAttempt(ctx, nil, row.ID))
	require.NoError(t, repo.RecordAttempt(ctx, nil, row.ID))

	row, _, err = repo.GetOrCreate(ctx, nil, "u1", ex.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, row.Attempts)
}

func TestCompletedExerciseIDsAndLessonCount(t *testing.T) {
	db := testutil.NewSeededDB(t)
	testutil.CreateUser(t, db, "u1")
	testutil.CreateUser(t, db, "u2")
	mc := testutil.FindExercise(t, db, "What does 'Hallo' mean in English?")
	fill := testutil.FindExercise(t, db, "Complete the greeting: '_____, wie geht's?'")
	repo := NewExerciseProgressRepository(db)
	ctx := context.Background()

	row, _, err := repo.GetOrCreate(ctx, nil, "u1", mc.ID)
	require.NoError(t, err)
	_, err = repo.MarkCompleted(ctx, nil, row.ID, time.Now(), 100)
	require.NoError(t, err)

	// 只创建未完成的记录不计入
	_, _, err = repo.GetOrCreate(ctx, nil, "u1", fill.ID)
	require.NoError(t, err)

	ids, err := repo.CompletedExerciseIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []uint{mc.ID}, ids)

	ids, err = repo.CompletedExerciseIDs(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, ids)

	n, err := repo.CountCompletedInLesson(ctx, nil, "u1", mc.LessonID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	rows, err := repo.FindByUserAndExercises(ctx, "u1", []uint{mc.ID, fill.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
