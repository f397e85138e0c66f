package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"fundpitch-backend/auth-service/middleware"
	"fundpitch-backend/shared/clients"
	"fundpitch-backend/shared/config"
	"fundpitch-backend/shared/database"
	sharedmw "fundpitch-backend/shared/middleware"
	"fundpitch-backend/shared/utils/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fundpitch-backend/auth-service/handlers"
	"fundpitch-backend/shared/database/models"
)

// @title Auth Service API
// @version 1.0
// @description OTP login, admin login and user-type change flow
// @host localhost:8001
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Redis backs the OTP store
	if err := cache.InitCacheManager(); err != nil {
		log.Fatalf("❌ Failed to initialize cache manager: %v", err)
	}

	db := database.GetDB()
	notifier := clients.NewNotificationClient()
	cfg := config.GetConfig()

	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "auth-service",
			"status":  "healthy",
		})
	})

	rateLimiter := middleware.NewRateLimiter(1 * time.Hour)
	otpMax, otpWindow, otpBlock := cfg.GetOTPRateLimit()
	otpLimit := middleware.RateLimitConfig{
		MaxRequests:   otpMax,
		TimeWindow:    time.Duration(otpWindow) * time.Second,
		BlockDuration: time.Duration(otpBlock) * time.Minute,
	}
	loginLimit := middleware.RateLimitConfig{
		MaxRequests:   cfg.GetRateLimitMaxRequests(),
		TimeWindow:    time.Duration(cfg.GetRateLimitTimeWindowSeconds()) * time.Second,
		BlockDuration: time.Duration(cfg.GetRateLimitBlockDurationMinutes()) * time.Minute,
	}

	otpHandler := handlers.NewOTPHandler(db, notifier)
	adminHandler := handlers.NewAdminHandler(db)
	userTypeHandler := handlers.NewUserTypeHandler(db)

	authRoutes := router.Group("/api/auth")
	{
		otp := authRoutes.Group("/otp")
		otp.Use(rateLimiter.OTPRateLimitMiddleware(otpLimit))
		{
			otp.POST("/request", otpHandler.RequestOTP)
			otp.POST("/verify", otpHandler.VerifyOTP)
		}

		authRoutes.POST("/admin/login", rateLimiter.LoginRateLimitMiddleware(loginLimit), adminHandler.AdminLogin)

		userType := authRoutes.Group("/user-type")
		userType.Use(sharedmw.AuthMiddleware())
		{
			userType.POST("", userTypeHandler.ChangeUserType)

			adminOnly := userType.Group("/requests")
			adminOnly.Use(sharedmw.RequireUserType(string(models.UserTypeAdmin)))
			{
				adminOnly.GET("", userTypeHandler.ListTypeChangeRequests)
				adminOnly.PUT("/:id/approve", userTypeHandler.ApproveTypeChange)
				adminOnly.PUT("/:id/reject", userTypeHandler.RejectTypeChange)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := strings.Split(cfg.AuthServiceURL, ":")[2]
	log.Printf("🔑 Auth Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
