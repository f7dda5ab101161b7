package app

import (
	"assess_prep_backend/docs"
	"assess_prep_backend/internal/config"
	"assess_prep_backend/internal/middleware"
	"assess_prep_backend/internal/model"
	"assess_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.Health)

	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/logout", c.auth.Logout)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		assessment := authGroup.Group("/assessment")
		{
			assessment.POST("", c.assessment.CreateSession)
			assessment.GET("/:sessionId", c.assessment.GetSession)
			assessment.GET("/:sessionId/questions", c.assessment.GetQuestions)
			assessment.POST("/:sessionId/submit", c.assessment.Submit)
			assessment.GET("/:sessionId/result", c.assessment.GetResult)
		}

		coding := authGroup.Group("/coding")
		{
			coding.POST("", c.coding.CreateSession)
			coding.GET("/:sessionId", c.coding.GetSession)
			coding.GET("/:sessionId/questions", c.coding.GetProblems)
			coding.POST("/:sessionId/submit", c.coding.Submit)
			coding.GET("/:sessionId/result", c.coding.GetResult)
		}

		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		{
			admin.GET("/sessions", c.assessment.ListSessions)
			admin.GET("/users", c.auth.ListUsers)
		}
	}
}
