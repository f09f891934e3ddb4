package app

import (
	"github.com/gin-gonic/gin"

	"learnhub_client/internal/config"
	"learnhub_client/internal/middleware"
	"learnhub_client/internal/model"
	"learnhub_client/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	// Public routes
	router.POST("/api/auth/login", c.auth.Login)

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.GET("/modules/:moduleId/quiz", c.quiz.GetDefinition)
		authGroup.POST("/modules/:moduleId/quiz/attempts", c.quiz.StartAttempt)
		authGroup.POST("/modules/:moduleId/quiz/attempts/:attemptId/submit", c.quiz.SubmitAttempt)

		if cfg.FeatureEnabled("simulations") {
			authGroup.GET("/simulations/scenarios", c.chat.ListScenarios)
			authGroup.POST("/simulations/sessions", c.chat.StartSession)
			authGroup.POST("/simulations/sessions/:id/messages", c.chat.SendMessage)
			authGroup.POST("/simulations/sessions/:id/complete", c.chat.CompleteSession)
		}
	}

	// Management routes. The role gate is coarse; guests pass it because
	// they may manage same-institution accounts. The fine-grained checks
	// live in the services.
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(
		middleware.AuthMiddleware(cfg),
		middleware.RoleMiddleware(model.RoleInstructor, model.RolePartnerInstructor, model.RoleGuest),
	)
	{
		adminGroup.GET("/users", c.user.List)
		adminGroup.POST("/users/guests", c.user.CreateGuest)
		adminGroup.PUT("/users/:id/role", c.user.ChangeRole)
		adminGroup.PUT("/users/:id/permissions", c.user.UpdatePermissions)
	}
}
