package router

import (
	"github.com/gin-gonic/gin"

	"mailgenie-backend/config"
	"mailgenie-backend/controllers"
	"mailgenie-backend/internal/middleware"
)

// Register registers all routes with the Gin engine
func Register(r *gin.Engine, cfg *config.Config, emailController *controllers.EmailController, healthController *controllers.HealthController) {
	// Apply global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/health", healthController.Health)

	// API routes
	api := r.Group("/api")
	{
		api.POST("/generate-email", emailController.GenerateEmail)
		api.POST("/send-email", emailController.SendEmail)
		api.POST("/send-email-smtp", emailController.SendEmailSMTP)
		api.GET("/groq-models", emailController.GetGroqModels)
	}
}
