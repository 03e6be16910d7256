package app

import (
	"exammaster_backend/docs"
	"exammaster_backend/internal/config"
	"exammaster_backend/internal/middleware"
	"exammaster_backend/internal/model"
	"exammaster_backend/pkg/monitoring"
	"exammaster_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.AuthMiddleware(&cfg.JWT),
		security.RateLimiter(cfg.RateLimit.MaxRequests, window),
	)
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	tests := group.Group("/tests")
	{
		tests.GET("", c.test.ListTests)
		tests.GET("/:id", c.test.GetTest)
		tests.GET("/:id/eligibility", c.test.CheckEligibility)
		tests.GET("/:id/attempts", c.attempt.ListAttempts)
		tests.POST("/:id/attempts", c.attempt.StartAttempt)
	}

	attempts := group.Group("/attempts")
	{
		attempts.GET("/:attemptId", c.attempt.GetAttempt)
		attempts.POST("/:attemptId/submit", c.attempt.SubmitAttempt)
	}

	reviews := group.Group("/reviews")
	{
		reviews.GET("/due", c.review.ListDue)
		reviews.POST("/:topic", c.review.RecordReview)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/questions", c.catalog.CreateQuestion)
		admin.PUT("/questions/:id", c.catalog.UpdateQuestion)
		admin.POST("/tests", c.catalog.CreateTest)
		admin.PUT("/tests/:id/publish", c.catalog.SetPublished)
	}
}
