package main

import (
	"log"
	"net/http"
	"strings"

	"fundpitch-backend/core-service/handlers"
	"fundpitch-backend/shared/config"
	"fundpitch-backend/shared/database"
	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/middleware"
	"fundpitch-backend/shared/utils/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Core Service API
// @version 1.0
// @description Users, company and individual profiles, profile completion
// @host localhost:8002
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

	// Redis backs the completion cache; the service still works without it
	if err := cache.InitCacheManager(); err != nil {
		log.Printf("⚠️ Cache manager unavailable, completion caching disabled: %v", err)
	}
	cm := cache.GetCacheManager()

	db := database.GetDB()

	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "core-service",
			"status":  "healthy",
		})
	})

	userHandler := handlers.NewUserHandler(db)
	companyHandler := handlers.NewCompanyProfileHandler(db, cm)
	childrenHandler := handlers.NewCompanyChildrenHandler(db, cm)
	subsidiaryHandler := handlers.NewSubsidiaryHandler(db)
	individualHandler := handlers.NewIndividualProfileHandler(db, cm)
	completionHandler := handlers.NewCompletionHandler(db, cm)

	founderOnly := middleware.RequireUserType(string(models.UserTypeFounder))
	adminOnly := middleware.RequireUserType(string(models.UserTypeAdmin))

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// User directory
		api.GET("/users", adminOnly, userHandler.GetUsers)
		api.GET("/users/:id", userHandler.GetUser)
		api.PUT("/users/:id", adminOnly, userHandler.UpdateUser)
		api.DELETE("/users/:id", adminOnly, userHandler.DeleteUser)

		// Company profile
		companyRoutes := api.Group("/company")
		{
			companyRoutes.GET("/profile", founderOnly, companyHandler.GetMyCompanyProfile)
			companyRoutes.PUT("/profile", founderOnly, companyHandler.UpsertCompanyProfile)
			companyRoutes.GET("/profile/:user_id", companyHandler.GetCompanyProfile)
			companyRoutes.GET("/overview/:user_id", companyHandler.GetCompanyOverview)

			companyRoutes.POST("/board-members", founderOnly, childrenHandler.AddBoardMember)
			companyRoutes.PUT("/board-members/:id", founderOnly, childrenHandler.UpdateBoardMember)
			companyRoutes.DELETE("/board-members/:id", founderOnly, childrenHandler.DeleteBoardMember)

			companyRoutes.POST("/key-management", founderOnly, childrenHandler.AddKeyManagement)
			companyRoutes.PUT("/key-management/:id", founderOnly, childrenHandler.UpdateKeyManagement)
			companyRoutes.DELETE("/key-management/:id", founderOnly, childrenHandler.DeleteKeyManagement)

			companyRoutes.POST("/verticals", founderOnly, childrenHandler.AddBusinessVertical)
			companyRoutes.DELETE("/verticals/:id", founderOnly, childrenHandler.DeleteBusinessVertical)

			companyRoutes.POST("/products", founderOnly, childrenHandler.AddProduct)
			companyRoutes.DELETE("/products/:id", founderOnly, childrenHandler.DeleteProduct)

			companyRoutes.POST("/decks", founderOnly, childrenHandler.AddCorporateDeck)
			companyRoutes.DELETE("/decks/:id", founderOnly, childrenHandler.DeleteCorporateDeck)

			companyRoutes.POST("/financial-documents", founderOnly, childrenHandler.AddFinancialDocument)
			companyRoutes.DELETE("/financial-documents/:id", founderOnly, childrenHandler.DeleteFinancialDocument)

			companyRoutes.GET("/subsidiaries", founderOnly, subsidiaryHandler.GetSubsidiaries)
			companyRoutes.POST("/subsidiaries", founderOnly, subsidiaryHandler.AddSubsidiary)
			companyRoutes.PUT("/subsidiaries/:id", founderOnly, subsidiaryHandler.MoveSubsidiary)
			companyRoutes.DELETE("/subsidiaries/:id", founderOnly, subsidiaryHandler.DeleteSubsidiary)
		}

		// Individual profile
		individualRoutes := api.Group("/individual")
		{
			individualRoutes.GET("/profile", individualHandler.GetMyIndividualProfile)
			individualRoutes.PUT("/profile", individualHandler.UpsertIndividualProfile)
			individualRoutes.GET("/profile/:user_id", individualHandler.GetIndividualProfile)
			individualRoutes.POST("/showcase-documents", individualHandler.AddShowcaseDocument)
			individualRoutes.DELETE("/showcase-documents/:id", individualHandler.DeleteShowcaseDocument)
		}

		// Profile completion
		api.GET("/profile/completion", completionHandler.GetMyCompletion)
		api.GET("/profile/completion/:user_id", completionHandler.GetCompletion)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := strings.Split(config.GetConfig().CoreServiceURL, ":")[2]
	log.Printf("🏢 Core Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
