package repository

import (
	"context"
	"testing"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/testutil"
	"lingua_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpsertProfile(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, created, err := repo.UpsertProfile(ctx, &model.User{
		UUIDBase: model.UUIDBase{ID: "user_1"},
		Email:    "anna@example.com",
		Username: "anna",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 0, user.XP)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 5, user.Hearts)

	// 已有进度不会被同步覆盖
	require.NoError(t, repo.ApplyReward(ctx, nil, "user_1", RewardUpdate{XPDelta: 60, Streak: 2, Level: 2, Hearts: 5}))

	now := time.Now()
	user, created, err = repo.UpsertProfile(ctx, &model.User{
		UUIDBase:  model.UUIDBase{ID: "user_1"},
		FirstName: "Anna",
		LastLogin: &now,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Anna", user.FirstName)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, 60, user.XP)
	assert.Equal(t, 2, user.Level)
	assert.Equal(t, 2, user.Streak)
}

func TestFindByIDNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByID(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := repo.FindByIDForUpdate(context.Background(), tx, "missing")
		return err
	})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestApplyRewardIsIncremental(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "u1")
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ApplyReward(ctx, nil, "u1", RewardUpdate{XPDelta: 30, Streak: 1, Level: 1, Hearts: 5}))
	require.NoError(t, repo.ApplyReward(ctx, nil, "u1", RewardUpdate{XPDelta: 25, Streak: 2, Level: 2, Hearts: 4}))

	user, err := repo.FindByID(ctx, nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, 55, user.XP)
	assert.Equal(t, 2, user.Streak)
	assert.Equal(t, 2, user.Level)
	assert.Equal(t, 4, user.Hearts)
}

func TestFindTopByXP(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for id, xp := range map[string]int{"a": 10, "b": 300, "c": 120} {
		testutil.CreateUser(t, db, id)
		require.NoError(t, repo.ApplyReward(ctx, nil, id, RewardUpdate{XPDelta: xp, Level: 1, Hearts: 5}))
	}

	top, err := repo.FindTopByXP(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].ID)
	assert.Equal(t, "c", top[1].ID)

	users, err := repo.FindByIDs(ctx, []string{"a", "c"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestCreateAssignsIDWhenMissing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	user := &model.User{Username: "anon"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Len(t, user.ID, 36)
	assert.Equal(t, model.DefaultLevel, user.Level)

	found, err := repo.FindByID(context.Background(), nil, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "anon", found.Username)
}
