package handlers

import (
	"net/http"
	"testing"

	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/database/models/company"
)

func TestUpsertCompanyProfile(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	founder := createUser(t, db, "founder@example.com", models.UserTypeFounder)

	w := doJSON(t, router, http.MethodGet, "/api/company/profile", nil, &founder.ID)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before upsert", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/api/company/profile", map[string]interface{}{
		"company_name": "Acme Robotics",
		"sectors":      "Robotics",
		"stage":        "Series A",
	}, &founder.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// The upsert overwrites all descriptive fields, so omitting one
	// clears it.
	w = doJSON(t, router, http.MethodPut, "/api/company/profile", map[string]interface{}{
		"company_name": "Acme Robotics Ltd",
		"city":         "Chennai",
	}, &founder.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&company.Profile{}).Where("user_id = ?", founder.ID).Count(&count)
	if count != 1 {
		t.Fatalf("profiles = %d, want 1 after double upsert", count)
	}

	var profile company.Profile
	db.First(&profile, "user_id = ?", founder.ID)
	if profile.CompanyName != "Acme Robotics Ltd" {
		t.Errorf("company_name = %q", profile.CompanyName)
	}
	if profile.Sectors != "" {
		t.Errorf("sectors = %q, want cleared", profile.Sectors)
	}
	if profile.City != "Chennai" {
		t.Errorf("city = %q", profile.City)
	}
}

func TestUpsertCompanyProfileBadEmail(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	founder := createUser(t, db, "founder@example.com", models.UserTypeFounder)

	w := doJSON(t, router, http.MethodPut, "/api/company/profile", map[string]interface{}{
		"company_name":  "Acme Robotics",
		"contact_email": "not-an-email",
	}, &founder.ID)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetCompanyOverview(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	founder := createUser(t, db, "founder@example.com", models.UserTypeFounder)
	viewer := createUser(t, db, "viewer@example.com", models.UserTypeInvestor)

	profile := company.Profile{UserID: founder.ID, CompanyName: "Acme Robotics"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	db.Create(&company.BoardMember{ProfileID: profile.ID, Name: "Asha Raman"})
	db.Create(&company.Product{ProfileID: profile.ID, Name: "AcmeBot"})
	db.Create(&company.CorporateDeck{ProfileID: profile.ID, ObjectKey: "decks/abc", Title: "Pitch"})

	w := doJSON(t, router, http.MethodGet, "/api/company/overview/"+founder.ID.String(), nil, &viewer.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["profile"] == nil {
		t.Fatal("overview missing profile")
	}
	if members := data["board_members"].([]interface{}); len(members) != 1 {
		t.Errorf("board_members = %d, want 1", len(members))
	}
	if products := data["products"].([]interface{}); len(products) != 1 {
		t.Errorf("products = %d, want 1", len(products))
	}
	if decks := data["corporate_decks"].([]interface{}); len(decks) != 1 {
		t.Errorf("corporate_decks = %d, want 1", len(decks))
	}
}
