package controller

import (
	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary 全部课程进度
// @Description 课程、模块、课时的完成度与锁定状态
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]progression.CourseView}
// @Router /api/courses/progress/all [get]
func (c *CourseController) GetAllWithProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courses, err := c.CourseService.GetAllCoursesWithProgress(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// @Summary 单个课程进度
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=progression.CourseView}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/progress [get]
func (c *CourseController) GetWithProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	course, err := c.CourseService.GetCourseWithProgress(ctx.Request.Context(), courseID, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 单个模块进度
// @Description 模块内课时的完成度与锁定状态
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response{data=progression.ModuleView}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id}/progress [get]
func (c *CourseController) GetModuleWithProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	moduleID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid module ID")
		return
	}

	module, err := c.CourseService.GetModuleWithProgress(ctx.Request.Context(), moduleID, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, module)
}
