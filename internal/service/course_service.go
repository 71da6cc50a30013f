package service

import (
	"context"

	"lingua_backend/internal/model"
	"lingua_backend/internal/progression"
	"lingua_backend/internal/util"
	"lingua_backend/pkg/logger"
	"lingua_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const hierarchyKey = "course-hierarchy"

type CourseService struct {
	CourseRepo CourseStore
	LedgerRepo LedgerStore
	loads      singleflight.Group
}

func NewCourseService(courseRepo CourseStore, ledgerRepo LedgerStore) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		LedgerRepo: ledgerRepo,
	}
}

// loadHierarchy 并发请求共享同一次查询。结果只读，调用方不得修改。
// 共享查询不随发起请求的取消而中止，否则会连带失败其他等待者。
func (s *CourseService) loadHierarchy(ctx context.Context) ([]model.Course, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.loads.Do(hierarchyKey, func() (interface{}, error) {
		return s.CourseRepo.FindAllWithHierarchy(shared)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Course), nil
}

// buildTree 完成记录读取失败时返回全部锁定、零进度的默认视图
func (s *CourseService) buildTree(ctx context.Context, userID string, courses []model.Course) []progression.CourseView {
	ids, err := s.LedgerRepo.CompletedExerciseIDs(ctx, userID)
	if err != nil {
		logger.Log.Error("load completions failed, serving locked default",
			zap.String("userId", userID),
			zap.Error(err),
		)
		return progression.LockedDefault(courses)
	}

	completed := make(progression.CompletionSet, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return progression.BuildTree(courses, completed)
}

// GetAllCoursesWithProgress 全部课程及其模块、课时的进度和解锁状态
func (s *CourseService) GetAllCoursesWithProgress(ctx context.Context, userID string) (views []progression.CourseView, err error) {
	ctx, span := tracing.Start(ctx, "CourseService.GetAllCoursesWithProgress", attribute.String("user.id", userID))
	defer func() { tracing.End(span, err) }()

	courses, err := s.loadHierarchy(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildTree(ctx, userID, courses), nil
}

// GetCourseWithProgress 单个课程，状态仍基于完整课程列表计算以反映前一课程的进度
func (s *CourseService) GetCourseWithProgress(ctx context.Context, courseID uint, userID string) (view *progression.CourseView, err error) {
	ctx, span := tracing.Start(ctx, "CourseService.GetCourseWithProgress",
		attribute.String("user.id", userID),
		attribute.Int64("course.id", int64(courseID)),
	)
	defer func() { tracing.End(span, err) }()

	courses, err := s.loadHierarchy(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range courses {
		if courses[i].ID == courseID {
			found = true
			break
		}
	}
	if !found {
		return nil, util.ErrCourseNotFound
	}

	for _, v := range s.buildTree(ctx, userID, courses) {
		if v.ID == courseID {
			v := v
			return &v, nil
		}
	}
	return nil, util.ErrCourseNotFound
}

// GetModuleWithProgress 单个模块及其课时的进度和锁定状态。
// 与单课程查询一样基于完整课程树计算，所在课程锁定或前置模块未完成时模块保持锁定。
func (s *CourseService) GetModuleWithProgress(ctx context.Context, moduleID uint, userID string) (view *progression.ModuleView, err error) {
	ctx, span := tracing.Start(ctx, "CourseService.GetModuleWithProgress",
		attribute.String("user.id", userID),
		attribute.Int64("module.id", int64(moduleID)),
	)
	defer func() { tracing.End(span, err) }()

	courses, err := s.loadHierarchy(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range s.buildTree(ctx, userID, courses) {
		for _, m := range c.Modules {
			if m.ID == moduleID {
				m := m
				return &m, nil
			}
		}
	}
	return nil, util.ErrModuleNotFound
}
