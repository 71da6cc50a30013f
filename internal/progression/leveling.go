// Package progression 实现答题奖励与学习进度相关的纯计算逻辑：
// 经验/等级换算、连击倍率、答案判定、进度汇总以及课程/模块/课时的解锁判定。
// 包内函数不访问存储，对输入只读。
package progression

import "math"

// 前 5 级使用固定阈值，之后按指数增长
var levelTable = [...]int{50, 120, 250, 370, 500}

// RequiredXPForLevel 返回达到 level 所需的累计经验
func RequiredXPForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	if level <= len(levelTable) {
		return levelTable[level-1]
	}
	return int(math.Round(100 * math.Pow(float64(level), 1.8)))
}

// LevelFromXP 返回 xp 对应的等级，最低为 1
func LevelFromXP(xp int) int {
	if xp < levelTable[0] {
		return 1
	}

	level := 1
	for RequiredXPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// LevelUp 描述一次经验变化后的升级情况
type LevelUp struct {
	LeveledUp      bool `json:"leveledUp"`
	NewLevel       *int `json:"newLevel,omitempty"`
	XPForNextLevel int  `json:"xpForNextLevel"`
}

// CheckLevelUp 可能一次跨越多级；currentLevel 小于 1 时按 1 处理
func CheckLevelUp(currentLevel, newTotalXP int) LevelUp {
	if currentLevel < 1 {
		currentLevel = 1
	}

	correct := LevelFromXP(newTotalXP)
	if correct > currentLevel {
		return LevelUp{
			LeveledUp:      true,
			NewLevel:       &correct,
			XPForNextLevel: RequiredXPForLevel(correct + 1),
		}
	}

	return LevelUp{
		LeveledUp:      false,
		XPForNextLevel: RequiredXPForLevel(currentLevel + 1),
	}
}
