package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrInvalidAnswer    = errors.New("answer missing or malformed")
)
