package app

import (
	"ai_tutor_backend/docs"
	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/internal/middleware"
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.PUT("/password", c.auth.ChangePassword)

		// 学生接口
		student := authGroup.Group("")
		student.Use(middleware.RoleMiddleware(model.RoleStudent))
		{
			student.POST("/chat", c.chat.Chat)
			student.GET("/evaluation/:username", c.score.Evaluation)
			student.POST("/recentlyask/:username", c.score.RecentActivity)
			student.POST("/upload-image", c.chat.UploadImage)
			student.POST("/advice", c.chat.Advice)
			student.POST("/source", c.archive.Source)
			student.POST("/classes/join", c.class.Join)
		}

		// 教师接口
		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.RoleTeacher))
		{
			teacher.POST("/classes", c.class.CreateOrAdd)
			teacher.GET("/classes/:classname", c.class.Details)
			teacher.DELETE("/classes/:classname", c.class.Dissolve)
			teacher.DELETE("/classes/:classname/students", c.class.Kick)
			teacher.POST("/classes/:classname/students", c.class.BulkAdd)
			teacher.POST("/import", c.class.Import)
			teacher.GET("/students/frequency", c.score.Frequency)
		}
	}
}
