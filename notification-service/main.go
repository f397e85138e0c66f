package main

import (
	"log"
	"net/http"
	"strings"

	"fundpitch-backend/notification-service/handlers"
	"fundpitch-backend/notification-service/services"
	"fundpitch-backend/shared/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Notification Service API
// @version 1.0
// @description Email, WhatsApp and live invite event dispatch
// @host localhost:8004
// @BasePath /api

func main() {
	// Load configuration
	config.LoadConfig()

	router := gin.Default()

	cfg := config.GetConfig()
	emailService := services.NewEmailService(cfg)
	whatsappService := services.NewWhatsAppService(cfg)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "notification-service",
			"status":  "healthy",
		})
	})

	// Email routes
	emailHandler := handlers.NewEmailHandler(emailService, cfg)
	emailRoutes := router.Group("/api/notifications/email")
	{
		emailRoutes.POST("/invite", emailHandler.SendInviteEmail)
		emailRoutes.POST("/otp", emailHandler.SendOTPEmail)
	}

	// WhatsApp routes
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappService)
	router.POST("/api/notifications/whatsapp/invite", whatsappHandler.SendInvite)

	// WebSocket endpoint
	router.GET("/ws/invites/:user_id", handlers.HandleWebSocket)

	// WebSocket event push endpoint (internal, used by invite-service)
	router.POST("/ws/send", handlers.SendWebSocketEvent)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := strings.Split(config.GetConfig().NotificationServiceURL, ":")[2]
	log.Printf("🔔 Notification Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
