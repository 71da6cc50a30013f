package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1},
		{4, 1},
		{5, 2.5},
		{10, 2.5},
		{11, 3},
		{15, 3},
		{16, 4},
		{100, 4},
	}

	for _, tt := range tests {
		if got := StreakMultiplier(tt.streak); got != tt.want {
			t.Errorf("StreakMultiplier(%d) = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestNextStreak(t *testing.T) {
	assert.Equal(t, 1, NextStreak(0, true))
	assert.Equal(t, 11, NextStreak(10, true))
	assert.Equal(t, 0, NextStreak(10, false))
	assert.Equal(t, 1, NextStreak(-2, true))
}

func TestAwardXP(t *testing.T) {
	assert.Equal(t, 2, AwardXP(2, 1))
	assert.Equal(t, 6, AwardXP(2, 11))
	assert.Equal(t, 8, AwardXP(3, 5)) // 7.5 -> 8
	assert.Equal(t, 0, AwardXP(0, 20))
}

func TestNextHearts(t *testing.T) {
	tests := []struct {
		name             string
		current          int
		correct, done    bool
		wantHearts, want int
	}{
		{"wrong costs a heart", 5, false, false, 4, -1},
		{"wrong at zero stays", 0, false, false, 0, 0},
		{"correct restores", 3, true, false, 4, 1},
		{"correct capped", MaxHearts, true, false, MaxHearts, 0},
		{"repeat untouched", 2, false, true, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hearts, change := NextHearts(tt.current, tt.correct, tt.done)
			assert.Equal(t, tt.wantHearts, hearts)
			assert.Equal(t, tt.want, change)
		})
	}
}

func TestAttemptScore(t *testing.T) {
	assert.Equal(t, 0, AttemptScore(false, 1))
	assert.Equal(t, 100, AttemptScore(true, 1))
	assert.Equal(t, 80, AttemptScore(true, 2))
	assert.Equal(t, 10, AttemptScore(true, 9))
	assert.Equal(t, 100, AttemptScore(true, 0))
}
