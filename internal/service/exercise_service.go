package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/progression"
	"lingua_backend/internal/repository"
	"lingua_backend/pkg/logger"
	"lingua_backend/pkg/monitoring"
	"lingua_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCheckAnswerRetries = 3

type ExerciseService struct {
	DB           *gorm.DB
	UserRepo     UserStore
	ExerciseRepo ExerciseStore
	LedgerRepo   LedgerStore
	Leaderboard  *Leaderboard
	now          func() time.Time
}

func NewExerciseService(
	db *gorm.DB,
	userRepo UserStore,
	exerciseRepo ExerciseStore,
	ledgerRepo LedgerStore,
	leaderboard *Leaderboard,
) *ExerciseService {
	return &ExerciseService{
		DB:           db,
		UserRepo:     userRepo,
		ExerciseRepo: exerciseRepo,
		LedgerRepo:   ledgerRepo,
		Leaderboard:  leaderboard,
		now:          time.Now,
	}
}

// CheckAnswerResult 答题结果
type CheckAnswerResult struct {
	IsCorrect         bool                `json:"isCorrect"`
	XPReward          int                 `json:"xpReward"`
	BaseXPReward      int                 `json:"baseXpReward"`
	StreakMultiplier  float64             `json:"streakMultiplier"`
	CurrentStreak     int                 `json:"currentStreak"`
	IsNewCompletion   bool                `json:"isNewCompletion"`
	LevelUp           progression.LevelUp `json:"levelUp"`
	CorrectAnswer     string              `json:"correctAnswer"`
	Feedback          string              `json:"feedback"`
	CompletionMessage *string             `json:"completionMessage"`
	Score             int                 `json:"score"`
	Attempts          int                 `json:"attempts"`
	Hearts            int                 `json:"hearts"`
	HeartChange       int                 `json:"heartChange"`
}

// submission 事务内的中间状态，重试时整体丢弃
type submission struct {
	result    CheckAnswerResult
	totalXP   int
	firstSeen bool
}

// CheckAnswer 判题并在一个事务内完成台账、连击、经验和等级的更新。
// 同一 (user, exercise) 至多发放一次经验，失败时不改变任何状态。
func (s *ExerciseService) CheckAnswer(ctx context.Context, userID string, exerciseID uint, answer progression.Answer) (result *CheckAnswerResult, err error) {
	ctx, span := tracing.Start(ctx, "ExerciseService.CheckAnswer",
		attribute.String("user.id", userID),
		attribute.Int64("exercise.id", int64(exerciseID)),
	)
	defer func() { tracing.End(span, err) }()

	exercise, err := s.ExerciseRepo.FindByIDWithAnswers(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	eval := progression.Evaluate(exercise, answer)

	var sub *submission
	for attempt := 1; ; attempt++ {
		sub, err = s.submit(ctx, userID, exercise, eval)
		if err == nil {
			break
		}
		if attempt >= maxCheckAnswerRetries || !isRetryable(err) {
			return nil, err
		}
		monitoring.CheckAnswerRetries.Inc()
		logger.Log.Warn("check answer conflict, retrying",
			zap.String("userId", userID),
			zap.Uint("exerciseId", exerciseID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	r := sub.result
	monitoring.RecordAnswer(string(exercise.Type), r.IsCorrect, r.XPReward, r.LevelUp.LeveledUp)
	if r.XPReward > 0 {
		s.Leaderboard.AddXP(ctx, userID, r.XPReward)
	}

	logger.Log.Info("answer checked",
		zap.String("userId", userID),
		zap.Uint("exerciseId", exerciseID),
		zap.String("type", string(exercise.Type)),
		zap.String("answerKind", answer.Kind.String()),
		zap.Bool("correct", r.IsCorrect),
		zap.Bool("newCompletion", r.IsNewCompletion),
		zap.Int("xp", r.XPReward),
		zap.Int("streak", r.CurrentStreak),
	)
	return &r, nil
}

func (s *ExerciseService) submit(ctx context.Context, userID string, exercise *model.Exercise, eval progression.Evaluation) (*submission, error) {
	sub := &submission{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.UserRepo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		row, created, err := s.LedgerRepo.GetOrCreate(ctx, tx, userID, exercise.ID)
		if err != nil {
			return fmt.Errorf("load exercise progress: %w", err)
		}
		sub.firstSeen = created

		now := s.now()
		repeat := row.Completed
		attempts := row.Attempts
		score := row.Score

		if !repeat {
			if err := s.LedgerRepo.RecordAttempt(ctx, tx, row.ID); err != nil {
				return fmt.Errorf("record attempt: %w", err)
			}
			attempts++
		}

		newCompletion := false
		if !repeat && eval.IsCorrect {
			score = progression.AttemptScore(true, attempts)
			won, err := s.LedgerRepo.MarkCompleted(ctx, tx, row.ID, now, score)
			if err != nil {
				return fmt.Errorf("mark completed: %w", err)
			}
			// 条件写入失败说明其他请求已完成该练习，按重复提交处理
			newCompletion = won
			repeat = !won
			if !won {
				score = row.Score
			}
		}

		level := user.Level
		if level < model.DefaultLevel {
			level = model.DefaultLevel
		}

		r := CheckAnswerResult{
			IsCorrect:        eval.IsCorrect,
			BaseXPReward:     baseXPFor(eval.IsCorrect, exercise.XPReward),
			StreakMultiplier: progression.StreakMultiplier(user.Streak),
			CurrentStreak:    user.Streak,
			IsNewCompletion:  newCompletion,
			LevelUp:          progression.CheckLevelUp(level, user.XP),
			CorrectAnswer:    eval.CorrectAnswer,
			Feedback:         feedbackFor(eval.IsCorrect),
			Score:            score,
			Attempts:         attempts,
			Hearts:           user.Hearts,
		}
		sub.totalXP = user.XP

		if !repeat {
			streak := progression.NextStreak(user.Streak, eval.IsCorrect)
			hearts, change := progression.NextHearts(user.Hearts, eval.IsCorrect, false)

			r.CurrentStreak = streak
			r.StreakMultiplier = progression.StreakMultiplier(streak)
			r.Hearts = hearts
			r.HeartChange = change

			if newCompletion {
				r.XPReward = progression.AwardXP(exercise.XPReward, streak)
				sub.totalXP = user.XP + r.XPReward
				r.LevelUp = progression.CheckLevelUp(level, sub.totalXP)
				if r.LevelUp.LeveledUp {
					level = *r.LevelUp.NewLevel
				}
			}

			if err := s.UserRepo.ApplyReward(ctx, tx, userID, repository.RewardUpdate{
				XPDelta: r.XPReward,
				Streak:  streak,
				Level:   level,
				Hearts:  hearts,
			}); err != nil {
				return fmt.Errorf("update user progress: %w", err)
			}
		}

		if newCompletion {
			msg, err := s.lessonCompletionMessage(ctx, tx, userID, exercise)
			if err != nil {
				return err
			}
			r.CompletionMessage = msg
		}

		sub.result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// lessonCompletionMessage 本次提交使课时达到 100% 时返回祝贺语
func (s *ExerciseService) lessonCompletionMessage(ctx context.Context, tx *gorm.DB, userID string, exercise *model.Exercise) (*string, error) {
	total, err := s.ExerciseRepo.CountByLesson(ctx, tx, exercise.LessonID)
	if err != nil {
		return nil, fmt.Errorf("count lesson exercises: %w", err)
	}
	done, err := s.LedgerRepo.CountCompletedInLesson(ctx, tx, userID, exercise.LessonID)
	if err != nil {
		return nil, fmt.Errorf("count completed exercises: %w", err)
	}
	if total == 0 || done < total {
		return nil, nil
	}

	title := ""
	if exercise.Lesson != nil {
		title = exercise.Lesson.Title
	}
	msg := fmt.Sprintf("Congratulations! You've completed all exercises in \"%s\" lesson. You can now move to the next lesson or practice this one again.", title)
	return &msg, nil
}

// baseXPFor 答错时基础经验按 0 返回
func baseXPFor(correct bool, xp int) int {
	if !correct {
		return 0
	}
	return xp
}

func feedbackFor(correct bool) string {
	if correct {
		return progression.FeedbackCorrect
	}
	return progression.FeedbackIncorrect
}

// isRetryable 唯一键竞争、死锁和序列化失败可以整体重试
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"deadlock", "database is locked", "could not serialize", "lock wait timeout"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// LessonExercise 练习展示用，不包含正确答案标记
type LessonExercise struct {
	ID          uint               `json:"id"`
	Type        model.ExerciseType `json:"type"`
	Question    string             `json:"question"`
	Instruction string             `json:"instruction"`
	Order       int                `json:"order"`
	XPReward    int                `json:"xpReward"`
	TimeLimit   *int               `json:"timeLimit,omitempty"`
	Options     []LessonOptionView `json:"exerciseOptions"`
	IsCompleted bool               `json:"isCompleted"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	Attempts    int                `json:"attempts"`
}

type LessonOptionView struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	Order    int    `json:"order"`
	ImageSrc string `json:"imageSrc,omitempty"`
	AudioSrc string `json:"audioSrc,omitempty"`
}

type LessonExercises struct {
	LessonID  uint             `json:"lessonId"`
	Title     string           `json:"title"`
	Exercises []LessonExercise `json:"exercises"`
	progression.Progress
}

// GetLessonExercises 课时内练习及用户完成状态
func (s *ExerciseService) GetLessonExercises(ctx context.Context, userID string, lessonID uint) (*LessonExercises, error) {
	lesson, err := s.ExerciseRepo.FindLessonWithExercises(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(lesson.Exercises))
	for _, ex := range lesson.Exercises {
		ids = append(ids, ex.ID)
	}
	rows, err := s.LedgerRepo.FindByUserAndExercises(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	byExercise := make(map[uint]model.ExerciseProgress, len(rows))
	completed := make(progression.CompletionSet, len(rows))
	for _, row := range rows {
		byExercise[row.ExerciseID] = row
		if row.Completed {
			completed[row.ExerciseID] = true
		}
	}

	out := &LessonExercises{
		LessonID:  lesson.ID,
		Title:     lesson.Title,
		Exercises: make([]LessonExercise, 0, len(lesson.Exercises)),
		Progress:  progression.LessonProgress(lesson.Exercises, completed),
	}
	for _, ex := range lesson.Exercises {
		row := byExercise[ex.ID]
		item := LessonExercise{
			ID:          ex.ID,
			Type:        ex.Type,
			Question:    ex.Question,
			Instruction: ex.Instruction,
			Order:       ex.Order,
			XPReward:    ex.XPReward,
			TimeLimit:   ex.TimeLimit,
			Options:     make([]LessonOptionView, 0, len(ex.Options)),
			IsCompleted: row.Completed,
			CompletedAt: row.CompletedAt,
			Attempts:    row.Attempts,
		}
		for _, o := range ex.Options {
			item.Options = append(item.Options, LessonOptionView{
				ID:       o.ID,
				Text:     o.Text,
				Order:    o.Order,
				ImageSrc: o.ImageSrc,
				AudioSrc: o.AudioSrc,
			})
		}
		out.Exercises = append(out.Exercises, item)
	}
	return out, nil
}
