package repository

import (
	"context"
	"errors"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// RewardUpdate 一次答题后写回用户的数据，XP 以增量方式累加
type RewardUpdate struct {
	XPDelta int
	Streak  int
	Level   int
	Hearts  int
}

func (r *UserRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.Level < 1 {
		user.Level = model.DefaultLevel
	}
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, tx *gorm.DB, id string) (*model.User, error) {
	var user model.User
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDForUpdate 在事务内锁定用户行，同一用户的答题提交因此串行执行
func (r *UserRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.User, error) {
	var user model.User
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ApplyReward(ctx context.Context, tx *gorm.DB, id string, upd RewardUpdate) error {
	return r.conn(tx).WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"xp":         gorm.Expr("xp + ?", upd.XPDelta),
			"streak":     upd.Streak,
			"level":      upd.Level,
			"hearts":     upd.Hearts,
			"updated_at": time.Now(),
		}).Error
}

// UpsertProfile 按 ID 同步身份资料，新用户以初始状态创建，老用户只更新资料字段
func (r *UserRepository) UpsertProfile(ctx context.Context, user *model.User) (*model.User, bool, error) {
	var created bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.User
		err := tx.Where("id = ?", user.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user.XP = 0
			user.Level = model.DefaultLevel
			user.Streak = 0
			user.Hearts = model.DefaultHearts
			created = true
			return tx.Create(user).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"last_login": user.LastLogin}
		if user.Email != "" {
			updates["email"] = user.Email
		}
		if user.Username != "" {
			updates["username"] = user.Username
		}
		if user.FirstName != "" {
			updates["first_name"] = user.FirstName
		}
		if user.LastName != "" {
			updates["last_name"] = user.LastName
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", user.ID).First(user).Error
	})
	if err != nil {
		return nil, false, err
	}
	return user, created, nil
}

func (r *UserRepository) FindTopByXP(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Order("xp DESC").Order("id ASC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}
