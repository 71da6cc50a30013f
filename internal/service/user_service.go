package service

import (
	"context"
	"fmt"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/progression"
	"lingua_backend/pkg/logger"

	"go.uber.org/zap"
)

type UserService struct {
	UserRepo    UserStore
	Leaderboard *Leaderboard
}

func NewUserService(userRepo UserStore, leaderboard *Leaderboard) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		Leaderboard: leaderboard,
	}
}

// Identity 身份提供方给出的用户资料，ID 为令牌 subject
type Identity struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
}

type UserProfile struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	XP             int        `json:"xp"`
	Level          int        `json:"level"`
	Streak         int        `json:"streak"`
	Hearts         int        `json:"hearts"`
	XPForNextLevel int        `json:"xpForNextLevel"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
}

func toProfile(u *model.User) *UserProfile {
	level := u.Level
	if level < model.DefaultLevel {
		level = model.DefaultLevel
	}
	return &UserProfile{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		XP:             u.XP,
		Level:          level,
		Streak:         u.Streak,
		Hearts:         u.Hearts,
		XPForNextLevel: progression.RequiredXPForLevel(level + 1),
		LastLogin:      u.LastLogin,
	}
}

// SyncUser 首次出现的用户以初始状态创建，之后只同步资料字段
func (s *UserService) SyncUser(ctx context.Context, identity Identity) (*UserProfile, bool, error) {
	if identity.ID == "" {
		return nil, false, fmt.Errorf("sync user: empty identity id")
	}
	now := time.Now()
	user, created, err := s.UserRepo.UpsertProfile(ctx, &model.User{
		UUIDBase:  model.UUIDBase{ID: identity.ID},
		Email:     identity.Email,
		Username:  identity.Username,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		LastLogin: &now,
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		logger.Log.Info("user created", zap.String("userId", user.ID))
		s.Leaderboard.AddXP(ctx, user.ID, user.XP)
	}
	return toProfile(user), created, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	user, err := s.UserRepo.FindByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

// GetLeaderboard 优先读 Redis，读取失败或未启用时按数据库 XP 排序
func (s *UserService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if s.Leaderboard.Enabled() {
		entries, err := s.leaderboardFromCache(ctx, limit)
		if err == nil {
			return entries, nil
		}
		logger.Log.Warn("read leaderboard from redis failed, falling back to database", zap.Error(err))
	}

	users, err := s.UserRepo.FindTopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			UserID:   u.ID,
			Username: u.Username,
			XP:       u.XP,
			Level:    u.Level,
		})
	}
	return entries, nil
}

func (s *UserService) leaderboardFromCache(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	ranked, err := s.Leaderboard.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.UserID)
	}
	users, err := s.UserRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]LeaderboardEntry, 0, len(ranked))
	for _, r := range ranked {
		u, ok := byID[r.UserID]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:     len(entries) + 1,
			UserID:   u.ID,
			Username: u.Username,
			XP:       r.XP,
			Level:    u.Level,
		})
	}
	return entries, nil
}
