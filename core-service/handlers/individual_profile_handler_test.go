package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/database/models/individual"
)

func TestUpsertIndividualProfile(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	advisor := createUser(t, db, "advisor@example.com", models.UserTypeAdvisor)

	w := doJSON(t, router, http.MethodGet, "/api/individual/profile", nil, &advisor.ID)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before upsert", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/api/individual/profile", map[string]interface{}{
		"full_name":   "Asha Raman",
		"designation": "CFO",
		"email":       "advisor@example.com",
	}, &advisor.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/individual/profile", map[string]interface{}{
		"full_name": "Asha Raman",
		"city":      "Chennai",
	}, &advisor.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("second upsert status = %d, body = %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&individual.Profile{}).Where("user_id = ?", advisor.ID).Count(&count)
	if count != 1 {
		t.Fatalf("profiles = %d, want 1", count)
	}

	var profile individual.Profile
	db.First(&profile, "user_id = ?", advisor.ID)
	if profile.Designation != "" {
		t.Errorf("designation = %q, want cleared by full overwrite", profile.Designation)
	}
	if profile.City != "Chennai" {
		t.Errorf("city = %q", profile.City)
	}

	w = doJSON(t, router, http.MethodGet, "/api/individual/profile", nil, &advisor.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["profile"] == nil || data["showcase_documents"] == nil {
		t.Errorf("response shape = %v", data)
	}
}

func TestShowcaseDocumentLimit(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	advisor := createUser(t, db, "advisor@example.com", models.UserTypeAdvisor)
	profile := individual.Profile{UserID: advisor.ID, FullName: "Asha Raman"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	for i := 0; i < individual.MaxShowcaseDocuments; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/individual/showcase-documents", map[string]interface{}{
			"title":      fmt.Sprintf("Case study %d", i+1),
			"object_key": fmt.Sprintf("showcase/doc-%d", i+1),
		}, &advisor.ID)
		if w.Code != http.StatusCreated {
			t.Fatalf("doc #%d status = %d, body = %s", i+1, w.Code, w.Body.String())
		}
	}

	w := doJSON(t, router, http.MethodPost, "/api/individual/showcase-documents", map[string]interface{}{
		"title":      "One too many",
		"object_key": "showcase/overflow",
	}, &advisor.ID)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["error"] != "Document limit reached" {
		t.Errorf("error = %v", body["error"])
	}

	// Deleting one frees a slot.
	var doc individual.ShowcaseDocument
	db.First(&doc, "profile_id = ?", profile.ID)
	w = doJSON(t, router, http.MethodDelete, "/api/individual/showcase-documents/"+doc.ID.String(), nil, &advisor.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/individual/showcase-documents", map[string]interface{}{
		"title":      "Back under the cap",
		"object_key": "showcase/replacement",
	}, &advisor.ID)
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d after freeing a slot, body = %s", w.Code, w.Body.String())
	}
}

func TestAddShowcaseDocumentWithoutProfile(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	advisor := createUser(t, db, "advisor@example.com", models.UserTypeAdvisor)

	w := doJSON(t, router, http.MethodPost, "/api/individual/showcase-documents", map[string]interface{}{
		"object_key": "showcase/doc",
	}, &advisor.ID)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
