package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"fundpitch-backend/shared/clients"
	"fundpitch-backend/shared/database"
	"fundpitch-backend/shared/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a per-test in-memory database with the full schema.
// The DSN carries the test name so parallel tests never share state.
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

// stubNotifier records dispatches instead of calling the notification
// service. sendErr makes email/WhatsApp sends fail on demand.
type stubNotifier struct {
	emails    []clients.InviteEmailRequest
	whatsapps []clients.WhatsAppInviteRequest
	events    []clients.InviteEventRequest
	sendErr   error
}

func (s *stubNotifier) SendInviteEmail(req clients.InviteEmailRequest) error {
	s.emails = append(s.emails, req)
	return s.sendErr
}

func (s *stubNotifier) SendWhatsAppInvite(req clients.WhatsAppInviteRequest) error {
	s.whatsapps = append(s.whatsapps, req)
	return s.sendErr
}

func (s *stubNotifier) PushInviteEvent(req clients.InviteEventRequest) error {
	s.events = append(s.events, req)
	return nil
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

// newTestRouter wires the service routes the same way main does, with
// the auth middleware swapped for headerAuth.
func newTestRouter(db *gorm.DB, notifier InviteNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(headerAuth())

	inviteHandler := NewInviteHandler(db, notifier)
	networkHandler := NewNetworkHandler(db)
	expressionHandler := NewExpressionHandler(db)
	endorsementHandler := NewEndorsementHandler(db)

	invites := router.Group("/api/invites")
	{
		invites.GET("/:token", inviteHandler.GetInvite)
		invites.POST("/:token/accept", inviteHandler.AcceptInvite)
		invites.POST("/:token/decline", inviteHandler.DeclineInvite)
		invites.POST("", inviteHandler.CreateDirectInvite)
		invites.POST("/chained", inviteHandler.CreateChainedInvite)
		invites.PUT("/:id/approve", inviteHandler.ApproveInvite)
		invites.PUT("/:id/reject", inviteHandler.RejectInvite)
	}

	network := router.Group("/api/network")
	{
		network.GET("/inbox", networkHandler.GetInbox)
		network.GET("", networkHandler.GetNetwork)
		network.GET("/advisors", networkHandler.GetAdvisors)
		network.GET("/clients", networkHandler.GetClients)
	}

	expressions := router.Group("/api/expressions")
	{
		expressions.POST("", expressionHandler.CreateExpression)
		expressions.GET("", expressionHandler.GetCompanyExpressions)
		expressions.PUT("/:id/approve", expressionHandler.ApproveExpression)
	}

	endorsements := router.Group("/api/endorsements")
	{
		endorsements.POST("", endorsementHandler.CreateEndorsement)
		endorsements.GET("", endorsementHandler.GetCompanyEndorsements)
		endorsements.PUT("/:id/approve", endorsementHandler.ApproveEndorsement)
	}

	return router
}

// doJSON performs a request against the test router. A nil userID
// leaves the request unauthenticated.
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

func createUser(t *testing.T, db *gorm.DB, email, phone string, userType models.UserType) models.User {
	t.Helper()

	user := models.User{Email: email, Phone: phone, UserType: userType}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
