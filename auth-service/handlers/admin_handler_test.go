package handlers

import (
	"net/http"
	"testing"

	"fundpitch-backend/shared/database/models"
	auth "fundpitch-backend/shared/utils/auth"
)

func TestAdminLogin(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	admin := models.User{
		Email:    "admin@example.com",
		UserType: models.UserTypeAdmin,
		Password: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/api/auth/admin/login", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "admin123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["token"] == nil || body["token"] == "" {
		t.Error("session token missing")
	}

	claims, err := auth.ValidateJWT(body["token"].(string))
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserType != string(models.UserTypeAdmin) {
		t.Errorf("token user_type = %q", claims.UserType)
	}
}

func TestAdminLoginRejections(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	hash, _ := auth.HashPassword("admin123")
	db.Create(&models.User{Email: "admin@example.com", UserType: models.UserTypeAdmin, Password: hash})
	// A non-admin with a password on file still cannot use this door.
	db.Create(&models.User{Email: "founder@example.com", UserType: models.UserTypeFounder, Password: hash})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.com", "nope"},
		{"unknown email", "ghost@example.com", "admin123"},
		{"non-admin account", "founder@example.com", "admin123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/auth/admin/login", map[string]interface{}{
				"email":    tt.email,
				"password": tt.password,
			}, nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401, body = %s", w.Code, w.Body.String())
			}
			if msg := decodeBody(t, w)["error"]; msg != "Invalid email or password" {
				t.Errorf("error = %v", msg)
			}
		})
	}
}
