package controller

import (
	"errors"

	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 资源不存在返回 404，其余记录日志后返回 500
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrExerciseNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound):
		util.NotFoundWithMessage(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func currentUserID(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.UserID() == "" {
		util.Unauthorized(ctx)
		return "", false
	}
	return claims.UserID(), true
}
