package main

import (
	"log"
	"net/http"
	"strings"

	"fundpitch-backend/media-service/handlers"
	"fundpitch-backend/media-service/services"
	"fundpitch-backend/shared/config"
	"fundpitch-backend/shared/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Media Service API
// @version 1.0
// @description Presigned MinIO uploads and downloads
// @host localhost:8005
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	config.LoadConfig()

	minioService, err := services.NewMinIOService()
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "media-service",
			"status":  "healthy",
		})
	})

	mediaHandler := handlers.NewMediaHandler(minioService)

	mediaRoutes := router.Group("/api/media")
	mediaRoutes.Use(middleware.AuthMiddleware())
	{
		mediaRoutes.POST("/presign-upload", mediaHandler.PresignUpload)
		mediaRoutes.GET("/presign-download", mediaHandler.PresignDownload)
		mediaRoutes.DELETE("/object", mediaHandler.DeleteObject)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := strings.Split(config.GetConfig().MediaServiceURL, ":")[2]
	log.Printf("📦 Media Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
