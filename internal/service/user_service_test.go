package service

import (
	"context"
	"testing"

	"lingua_backend/internal/repository"
	"lingua_backend/internal/testutil"
	"lingua_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncUserCreatesWithInitialState(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(repository.NewUserRepository(db), NewLeaderboard(nil))

	profile, created, err := svc.SyncUser(context.Background(), Identity{
		ID:       "user_2abc",
		Email:    "anna@example.com",
		Username: "anna",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "user_2abc", profile.ID)
	assert.Equal(t, 0, profile.XP)
	assert.Equal(t, 1, profile.Level)
	assert.Equal(t, 0, profile.Streak)
	assert.Equal(t, 5, profile.Hearts)
	assert.Equal(t, 120, profile.XPForNextLevel)
	assert.NotNil(t, profile.LastLogin)

	_, created, err = svc.SyncUser(context.Background(), Identity{ID: "user_2abc", FirstName: "Anna"})
	require.NoError(t, err)
	assert.False(t, created)

	_, _, err = svc.SyncUser(context.Background(), Identity{})
	assert.Error(t, err)
}

func TestGetProfile(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "u1")
	svc := NewUserService(repository.NewUserRepository(db), NewLeaderboard(nil))

	profile, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.Username)

	_, err = svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGetLeaderboardFallsBackToDatabase(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserRepository(db)
	svc := NewUserService(repo, NewLeaderboard(nil))
	ctx := context.Background()

	for id, xp := range map[string]int{"a": 40, "b": 500, "c": 130} {
		testutil.CreateUser(t, db, id)
		require.NoError(t, repo.ApplyReward(ctx, nil, id, repository.RewardUpdate{XPDelta: xp, Level: 1, Hearts: 5}))
	}

	entries, err := svc.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "c", entries[1].UserID)
	assert.Equal(t, "a", entries[2].UserID)
	assert.Equal(t, 3, entries[2].Rank)
}
