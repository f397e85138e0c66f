package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"fundpitch-backend/shared/database"
	"fundpitch-backend/shared/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a per-test in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(database.MigrationModels()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// headerAuth stands in for the JWT middleware: the caller identity
// comes from the X-User-ID request header.
func headerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set("userID", id)
			}
		}
		c.Next()
	}
}

// newTestRouter wires the service routes with headerAuth in place of
// the JWT middleware. The completion cache stays nil, so every request
// recomputes.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	userHandler := NewUserHandler(db)
	companyHandler := NewCompanyProfileHandler(db, nil)
	childrenHandler := NewCompanyChildrenHandler(db, nil)
	subsidiaryHandler := NewSubsidiaryHandler(db)
	individualHandler := NewIndividualProfileHandler(db, nil)
	completionHandler := NewCompletionHandler(db, nil)

	api := router.Group("/api")
	api.Use(headerAuth())
	{
		api.GET("/users", userHandler.GetUsers)
		api.GET("/users/:id", userHandler.GetUser)
		api.PUT("/users/:id", userHandler.UpdateUser)
		api.DELETE("/users/:id", userHandler.DeleteUser)

		companyRoutes := api.Group("/company")
		{
			companyRoutes.GET("/profile", companyHandler.GetMyCompanyProfile)
			companyRoutes.PUT("/profile", companyHandler.UpsertCompanyProfile)
			companyRoutes.GET("/profile/:user_id", companyHandler.GetCompanyProfile)
			companyRoutes.GET("/overview/:user_id", companyHandler.GetCompanyOverview)

			companyRoutes.POST("/board-members", childrenHandler.AddBoardMember)
			companyRoutes.PUT("/board-members/:id", childrenHandler.UpdateBoardMember)
			companyRoutes.DELETE("/board-members/:id", childrenHandler.DeleteBoardMember)

			companyRoutes.POST("/key-management", childrenHandler.AddKeyManagement)
			companyRoutes.POST("/verticals", childrenHandler.AddBusinessVertical)
			companyRoutes.POST("/products", childrenHandler.AddProduct)
			companyRoutes.POST("/decks", childrenHandler.AddCorporateDeck)
			companyRoutes.POST("/financial-documents", childrenHandler.AddFinancialDocument)

			companyRoutes.GET("/subsidiaries", subsidiaryHandler.GetSubsidiaries)
			companyRoutes.POST("/subsidiaries", subsidiaryHandler.AddSubsidiary)
			companyRoutes.PUT("/subsidiaries/:id", subsidiaryHandler.MoveSubsidiary)
			companyRoutes.DELETE("/subsidiaries/:id", subsidiaryHandler.DeleteSubsidiary)
		}

		individualRoutes := api.Group("/individual")
		{
			individualRoutes.GET("/profile", individualHandler.GetMyIndividualProfile)
			individualRoutes.PUT("/profile", individualHandler.UpsertIndividualProfile)
			individualRoutes.GET("/profile/:user_id", individualHandler.GetIndividualProfile)
			individualRoutes.POST("/showcase-documents", individualHandler.AddShowcaseDocument)
			individualRoutes.DELETE("/showcase-documents/:id", individualHandler.DeleteShowcaseDocument)
		}

		api.GET("/profile/completion", completionHandler.GetMyCompletion)
		api.GET("/profile/completion/:user_id", completionHandler.GetCompletion)
	}

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, userID *uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != nil {
		req.Header.Set("X-User-ID", userID.String())
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func createUser(t *testing.T, db *gorm.DB, email string, userType models.UserType) models.User {
	t.Helper()

	user := models.User{Email: email, UserType: userType}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
