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

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(headerAuth())

	adminHandler := NewAdminHandler(db)
	userTypeHandler := NewUserTypeHandler(db)

	auth := router.Group("/api/auth")
	{
		auth.POST("/admin/login", adminHandler.AdminLogin)

		userType := auth.Group("/user-type")
		{
			userType.POST("", userTypeHandler.ChangeUserType)
			userType.GET("/requests", userTypeHandler.ListTypeChangeRequests)
			userType.PUT("/requests/:id/approve", userTypeHandler.ApproveTypeChange)
			userType.PUT("/requests/:id/reject", userTypeHandler.RejectTypeChange)
		}
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
