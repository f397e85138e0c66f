package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"fundpitch-backend/api-gateway/middleware"
	"fundpitch-backend/api-gateway/routes"
	"fundpitch-backend/shared/config"

	_ "fundpitch-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title FundPitch API
// @version 1.0
// @description API documentation for the FundPitch business networking platform

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @tag.name auth
// @tag.description OTP and admin authentication

// @tag.name users
// @tag.description User directory operations

// @tag.name company
// @tag.description Company profile operations

// @tag.name individual
// @tag.description Individual profile operations

// @tag.name profile
// @tag.description Profile completion

// @tag.name invites
// @tag.description Invite engine operations

// @tag.name network
// @tag.description Network projections

// @tag.name expressions
// @tag.description Investment offers

// @tag.name endorsements
// @tag.description Testimonials

// @tag.name media
// @tag.description Presigned upload and download

// @tag.name notifications
// @tag.description Email, WhatsApp and WebSocket dispatch

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.GetConfig()

	// Initialize global rate limiter
	rateLimiter := middleware.NewRateLimiter(5 * time.Minute) // Cleanup every 5 minutes
	globalRateConfig := middleware.NewRateLimitConfig()

	router := gin.Default()

	// CORS for the web frontend
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Global rate limiter middleware
	router.Use(rateLimiter.GlobalRateLimitMiddleware(globalRateConfig))

	// Unified response envelope for all proxied responses
	router.Use(middleware.UnifiedResponseMiddleware())

	// Health check endpoint
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "API Gateway is running"})
	})

	// Auth service routes
	// Note: Auth Service has its own internal rate limiting
	router.Any("/api/auth/*path", routes.ProxyToService("auth"))

	// Core service routes
	router.Any("/api/users/*path", routes.ProxyToService("core"))
	router.Any("/api/users", routes.ProxyToService("core"))
	router.Any("/api/company/*path", routes.ProxyToService("core"))
	router.Any("/api/individual/*path", routes.ProxyToService("core"))
	router.Any("/api/profile/*path", routes.ProxyToService("core"))

	// Invite service routes
	router.Any("/api/invites/*path", routes.ProxyToService("invite"))
	router.Any("/api/invites", routes.ProxyToService("invite"))
	router.Any("/api/network/*path", routes.ProxyToService("invite"))
	router.Any("/api/network", routes.ProxyToService("invite"))
	router.Any("/api/expressions/*path", routes.ProxyToService("invite"))
	router.Any("/api/expressions", routes.ProxyToService("invite"))
	router.Any("/api/endorsements/*path", routes.ProxyToService("invite"))
	router.Any("/api/endorsements", routes.ProxyToService("invite"))

	// Media service routes
	router.Any("/api/media/*path", routes.ProxyToService("media"))

	// Notification service routes (internal email/whatsapp endpoints are
	// not exposed; only the live invite event socket is public)
	router.GET("/ws/invites/:user_id", routes.ProxyToService("notification"))

	// Swagger documentation UI, development only
	router.GET("/swagger/*any", func(c *gin.Context) {
		if gin.Mode() == gin.DebugMode {
			ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
		} else {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Swagger documentation not available in production",
			})
		}
	})

	// Server Start
	port := strings.Split(cfg.APIGatewayURL, ":")[2]
	log.Printf("🌐 API Gateway is running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
