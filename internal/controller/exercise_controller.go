package controller

import (
	"encoding/json"

	"lingua_backend/internal/progression"
	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// CheckAnswerRequest answer 可以是选项 ID、文本、词序数组或外部判定布尔值
type CheckAnswerRequest struct {
	Answer json.RawMessage `json:"answer" swaggertype:"string"`
}

// @Summary 提交答案
// @Description 判题并发放经验、更新连击和等级，同一练习只奖励一次
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "练习ID"
// @Param request body CheckAnswerRequest true "答案"
// @Success 200 {object} util.Response{data=service.CheckAnswerResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exercises/{id}/check [post]
func (c *ExerciseController) CheckAnswer(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	exerciseID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid exercise ID")
		return
	}

	var req CheckAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidAnswer.Error())
		return
	}

	result, err := c.ExerciseService.CheckAnswer(ctx.Request.Context(), userID, exerciseID, progression.ParseAnswer(req.Answer))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 获取课时练习
// @Description 课时内全部练习（不含答案）及当前用户的完成情况
// @Tags 练习
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response{data=service.LessonExercises}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/exercises [get]
func (c *ExerciseController) GetLessonExercises(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	lessonID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid lesson ID")
		return
	}

	lesson, err := c.ExerciseService.GetLessonExercises(ctx.Request.Context(), userID, lessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}
