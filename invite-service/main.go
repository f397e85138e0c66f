package main

import (
	"log"
	"net/http"
	"strings"

	"fundpitch-backend/invite-service/handlers"
	"fundpitch-backend/shared/clients"
	"fundpitch-backend/shared/config"
	"fundpitch-backend/shared/database"
	"fundpitch-backend/shared/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Invite Service API
// @version 1.0
// @description Invite engine, network projections, expressions and endorsements
// @host localhost:8003
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

	db := database.GetDB()
	notifier := clients.NewNotificationClient()

	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "invite-service",
			"status":  "healthy",
		})
	})

	inviteHandler := handlers.NewInviteHandler(db, notifier)
	networkHandler := handlers.NewNetworkHandler(db)
	expressionHandler := handlers.NewExpressionHandler(db)
	endorsementHandler := handlers.NewEndorsementHandler(db)

	// Public invite routes (reached from the invite link, no session yet)
	public := router.Group("/api/invites")
	{
		public.GET("/:token", inviteHandler.GetInvite)
		public.POST("/:token/accept", inviteHandler.AcceptInvite)
		public.POST("/:token/decline", inviteHandler.DeclineInvite)
	}

	// Authenticated invite routes
	invites := router.Group("/api/invites")
	invites.Use(middleware.AuthMiddleware())
	{
		invites.POST("", inviteHandler.CreateDirectInvite)
		invites.POST("/chained", inviteHandler.CreateChainedInvite)
		invites.PUT("/:id/approve", inviteHandler.ApproveInvite)
		invites.PUT("/:id/reject", inviteHandler.RejectInvite)
	}

	// Network projection routes
	network := router.Group("/api/network")
	network.Use(middleware.AuthMiddleware())
	{
		network.GET("/inbox", networkHandler.GetInbox)
		network.GET("", networkHandler.GetNetwork)
		network.GET("/advisors", networkHandler.GetAdvisors)
		network.GET("/clients", networkHandler.GetClients)
	}

	// Expression routes
	expressions := router.Group("/api/expressions")
	expressions.Use(middleware.AuthMiddleware())
	{
		expressions.POST("", expressionHandler.CreateExpression)
		expressions.GET("", expressionHandler.GetCompanyExpressions)
		expressions.PUT("/:id/approve", expressionHandler.ApproveExpression)
	}

	// Endorsement routes
	endorsements := router.Group("/api/endorsements")
	endorsements.Use(middleware.AuthMiddleware())
	{
		endorsements.POST("", endorsementHandler.CreateEndorsement)
		endorsements.GET("", endorsementHandler.GetCompanyEndorsements)
		endorsements.PUT("/:id/approve", endorsementHandler.ApproveEndorsement)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := strings.Split(config.GetConfig().InviteServiceURL, ":")[2]
	log.Printf("🤝 Invite Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
