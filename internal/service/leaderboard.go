package service

import (
	"context"

	"lingua_backend/internal/util"
	"lingua_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Leaderboard Redis 有序集合维护的 XP 排行。
// Redis 未启用时所有方法退化为空操作，读取方回退到数据库。
type Leaderboard struct {
	Redis *redis.Client
	Key   string
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{Redis: rdb, Key: util.LeaderboardKey}
}

func (l *Leaderboard) Enabled() bool {
	return l != nil && l.Redis != nil
}

// AddXP 按增量累加 XP，与数据库侧的 xp = xp + ? 保持一致。
// 失败只记录日志，不影响已提交的答题结果。
func (l *Leaderboard) AddXP(ctx context.Context, userID string, delta int) {
	if !l.Enabled() {
		return
	}
	err := l.Redis.ZIncrBy(ctx, l.Key, float64(delta), userID).Err()
	if err != nil {
		logger.Log.Warn("update leaderboard failed", zap.String("userId", userID), zap.Error(err))
	}
}

type rankedUser struct {
	UserID string
	XP     int
}

func (l *Leaderboard) Top(ctx context.Context, limit int) ([]rankedUser, error) {
	zs, err := l.Redis.ZRevRangeWithScores(ctx, l.Key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]rankedUser, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, rankedUser{UserID: member, XP: int(z.Score)})
	}
	return out, nil
}
