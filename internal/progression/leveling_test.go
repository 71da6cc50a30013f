package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{-3, 0},
		{0, 0},
		{1, 50},
		{2, 120},
		{3, 250},
		{4, 370},
		{5, 500},
		{6, 2516},
		{7, 3320},
		{10, 6310},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RequiredXPForLevel(tt.level), "level %d", tt.level)
	}
}

func TestRequiredXPForLevelStrictlyIncreasing(t *testing.T) {
	for level := 1; level < 100; level++ {
		require.Less(t, RequiredXPForLevel(level), RequiredXPForLevel(level+1), "level %d", level)
	}
}

func TestLevelFromXPInvertsRequiredXP(t *testing.T) {
	for level := 1; level <= 50; level++ {
		assert.Equal(t, level, LevelFromXP(RequiredXPForLevel(level)), "level %d", level)
	}
}

func TestLevelFromXPMonotonic(t *testing.T) {
	prev := LevelFromXP(0)
	for xp := 1; xp <= 20000; xp++ {
		cur := LevelFromXP(xp)
		require.GreaterOrEqual(t, cur, prev, "xp %d", xp)
		prev = cur
	}
}

func TestLevelFromXPBoundaries(t *testing.T) {
	assert.Equal(t, 1, LevelFromXP(0))
	assert.Equal(t, 1, LevelFromXP(49))
	assert.Equal(t, 1, LevelFromXP(55))
	assert.Equal(t, 1, LevelFromXP(119))
	assert.Equal(t, 2, LevelFromXP(120))
	assert.Equal(t, 5, LevelFromXP(2515))
	assert.Equal(t, 6, LevelFromXP(2516))
}

func TestCheckLevelUp(t *testing.T) {
	t.Run("no level up", func(t *testing.T) {
		got := CheckLevelUp(1, 55)
		assert.False(t, got.LeveledUp)
		assert.Nil(t, got.NewLevel)
		assert.Equal(t, 120, got.XPForNextLevel)
	})

	t.Run("single level", func(t *testing.T) {
		got := CheckLevelUp(1, 130)
		require.True(t, got.LeveledUp)
		require.NotNil(t, got.NewLevel)
		assert.Equal(t, 2, *got.NewLevel)
		assert.Equal(t, 250, got.XPForNextLevel)
	})

	t.Run("skips several levels", func(t *testing.T) {
		got := CheckLevelUp(1, 600)
		require.True(t, got.LeveledUp)
		assert.Equal(t, 5, *got.NewLevel)
		assert.Equal(t, 2516, got.XPForNextLevel)
	})

	t.Run("invalid current level floors to one", func(t *testing.T) {
		got := CheckLevelUp(0, 55)
		assert.False(t, got.LeveledUp)
		assert.Equal(t, 120, got.XPForNextLevel)
	})

	t.Run("stored level ahead of xp never drops", func(t *testing.T) {
		got := CheckLevelUp(4, 10)
		assert.False(t, got.LeveledUp)
		assert.Equal(t, 500, got.XPForNextLevel)
	})
}
