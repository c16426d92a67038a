package app

import (
	"skillreel_backend/docs"
	"skillreel_backend/internal/config"
	"skillreel_backend/internal/middleware"
	"skillreel_backend/internal/model"
	"skillreel_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由
	router.GET("/api/health", c.health.Health)

	// 登录用户路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/watch/report", c.watch.Report)
		authGroup.GET("/interests", c.watch.ListInterests)

		authGroup.GET("/videos/:videoId/quiz/questions", c.quiz.GetQuestions)
		authGroup.POST("/quiz/submit", c.quiz.Submit)

		authGroup.GET("/skills", c.skill.ListSkills)
		authGroup.GET("/skills/:topic", c.skill.GetSkill)

		// 创作者分析
		creatorGroup := authGroup.Group("/creator")
		creatorGroup.Use(middleware.RoleMiddleware(model.Creator))
		{
			creatorGroup.GET("/watch-stats", c.creator.WatchStats)
		}
	}

	// 管理员路由
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.POST("/videos", c.admin.CreateVideo)
		adminGroup.GET("/videos", c.admin.ListVideos)
		adminGroup.POST("/channels", c.admin.CreateChannel)

		adminGroup.POST("/videos/:id/segments", c.admin.CreateSegment)
		adminGroup.GET("/videos/:id/segments", c.admin.ListSegments)
		adminGroup.DELETE("/videos/:id/segments/:segmentId", c.admin.DeleteSegment)

		adminGroup.POST("/videos/:id/questions", c.admin.CreateQuestion)
	}
}
