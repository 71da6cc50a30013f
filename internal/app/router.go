package app

import (
	"lingua_backend/internal/config"
	"lingua_backend/internal/middleware"
	"lingua_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/leaderboard", c.user.GetLeaderboard)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		users := authGroup.Group("/users")
		{
			users.POST("/sync", c.user.Sync)
			users.GET("/me", c.user.GetProfile)
		}

		authGroup.POST("/exercises/:id/check", c.exercise.CheckAnswer)
		authGroup.GET("/lessons/:id/exercises", c.exercise.GetLessonExercises)

		courses := authGroup.Group("/courses")
		{
			courses.GET("/progress/all", c.course.GetAllWithProgress)
			courses.GET("/:id/progress", c.course.GetWithProgress)
		}

		authGroup.GET("/modules/:id/progress", c.course.GetModuleWithProgress)
	}
}
