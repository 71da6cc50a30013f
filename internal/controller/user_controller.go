package controller

import (
	"net/http"

	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type SyncUserRequest struct {
	Email     string `json:"email" binding:"omitempty,email"`
	Username  string `json:"username" binding:"omitempty,max=100"`
	FirstName string `json:"firstName" binding:"omitempty,max=100"`
	LastName  string `json:"lastName" binding:"omitempty,max=100"`
}

// @Summary 同步用户
// @Description 以令牌 subject 为 ID 创建或更新用户资料，新用户 xp=0 level=1
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SyncUserRequest false "资料"
// @Success 200 {object} util.Response{data=service.UserProfile}
// @Success 201 {object} util.Response{data=service.UserProfile}
// @Router /api/users/sync [post]
func (c *UserController) Sync(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SyncUserRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	identity := service.Identity{
		ID:        claims.UserID(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if identity.Email == "" {
		identity.Email = claims.Email
	}
	if identity.Username == "" {
		identity.Username = claims.Username
	}

	profile, created, err := c.UserService.SyncUser(ctx.Request.Context(), identity)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if created {
		ctx.JSON(http.StatusCreated, util.Response{
			Code:    http.StatusCreated,
			Message: "created",
			Data:    profile,
		})
		return
	}
	util.Success(ctx, profile)
}

// @Summary 当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserProfile}
// @Failure 404 {object} util.Response
// @Router /api/users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.UserService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary XP 排行榜
// @Tags 用户
// @Produce json
// @Param limit query int false "返回数量" default(10)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (c *UserController) GetLeaderboard(ctx *gin.Context) {
	limit := util.ParseLimit(ctx.Query("limit"), util.DefaultLeaderboardLimit, util.MaxLeaderboardLimit)

	entries, err := c.UserService.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
