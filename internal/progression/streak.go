package progression

import "math"

const (
	MaxHearts = 5

	baseScore      = 100
	attemptPenalty = 20
	minScore       = 10
)

// StreakMultiplier 连击倍率（阶梯函数）
func StreakMultiplier(streak int) float64 {
	switch {
	case streak < 5:
		return 1
	case streak < 11:
		return 2.5
	case streak < 16:
		return 3
	default:
		return 4
	}
}

// NextStreak 答对加一，答错清零
func NextStreak(previous int, correct bool) int {
	if !correct {
		return 0
	}
	if previous < 0 {
		previous = 0
	}
	return previous + 1
}

// AwardXP 按新的连击数计算本次发放的经验
func AwardXP(base, streak int) int {
	if base <= 0 {
		return 0
	}
	return int(math.Round(float64(base) * StreakMultiplier(streak)))
}

// NextHearts 只在未完成的练习上增减生命值，范围 [0, MaxHearts]
func NextHearts(current int, correct, alreadyCompleted bool) (hearts, change int) {
	if alreadyCompleted {
		return current, 0
	}
	if correct {
		if current < MaxHearts {
			return current + 1, 1
		}
		return current, 0
	}
	if current > 0 {
		return current - 1, -1
	}
	return current, 0
}

// AttemptScore 首次答对得 100 分，每多尝试一次扣 20，最低 10 分
func AttemptScore(correct bool, attempts int) int {
	if !correct {
		return 0
	}
	if attempts < 1 {
		attempts = 1
	}
	score := baseScore - (attempts-1)*attemptPenalty
	if score < minScore {
		return minScore
	}
	return score
}
