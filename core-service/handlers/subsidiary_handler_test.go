package handlers

import (
	"net/http"
	"testing"

	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/database/models/company"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedCompanyProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) company.Profile {
	t.Helper()

	profile := company.Profile{UserID: userID, CompanyName: name}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed company profile: %v", err)
	}
	return profile
}

func TestAddSubsidiary(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	founder := createUser(t, db, "founder@example.com", models.UserTypeFounder)
	seedCompanyProfile(t, db, founder.ID, "Acme Robotics")

	w := doJSON(t, router, http.MethodPost, "/api/company/subsidiaries", map[string]interface{}{
		"label":      "Acme Holdings",
		"position_x": 100.0,
		"position_y": 40.0,
	}, &founder.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	root := decodeBody(t, w)["data"].(map[string]interface{})
	rootID := root["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/company/subsidiaries", map[string]interface{}{
		"label":     "Acme Europe",
		"parent_id": rootID,
	}, &founder.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("child status = %d, body = %s", w.Code, w.Body.String())
	}
	child := decodeBody(t, w)["data"].(map[string]interface{})
	if child["parent_id"] != rootID {
		t.Errorf("parent_id = %v, want %s", child["parent_id"], rootID)
	}

	// A parent belonging to another founder's chart is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/company/subsidiaries", map[string]interface{}{
		"label":     "Orphan",
		"parent_id": uuid.NewString(),
	}, &founder.ID)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}
	if msg := decodeBody(t, w)["error"]; msg != "Parent node not found" {
		t.Errorf("error = %v", msg)
	}
}

func TestAddSubsidiaryWithoutProfile(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	founder := createUser(t, db, "founder@example.com", models.UserTypeFounder)

	w := doJSON(t, router, http.MethodPost, "/api/company/subsidiaries", map[string]interface{}{
		"label": "Acme Holdings",
	}, &founder.ID)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body = %s", w.Code, w.Body.String())
	}
}

func TestMoveSubsidiary(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	founder := createUser(t, db, "founder@example.com", models.UserTypeFounder)
	profile := seedCompanyProfile(t, db, founder.ID, "Acme Robotics")

	a := company.SubsidiaryNode{ProfileID: profile.ID, Label: "A"}
	b := company.SubsidiaryNode{ProfileID: profile.ID, Label: "B"}
	db.Create(&a)
	db.Create(&b)

	w := doJSON(t, router, http.MethodPut, "/api/company/subsidiaries/"+b.ID.String(), map[string]interface{}{
		"position_x": 10.0,
		"position_y": 20.0,
		"parent_id":  a.ID.String(),
	}, &founder.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var moved company.SubsidiaryNode
	db.First(&moved, "id = ?", b.ID)
	if moved.ParentID == nil || *moved.ParentID != a.ID {
		t.Errorf("parent_id = %v, want %s", moved.ParentID, a.ID)
	}
	if moved.PositionX != 10.0 || moved.PositionY != 20.0 {
		t.Errorf("position = (%v, %v)", moved.PositionX, moved.PositionY)
	}

	// Re-parenting to itself is rejected.
	w = doJSON(t, router, http.MethodPut, "/api/company/subsidiaries/"+b.ID.String(), map[string]interface{}{
		"parent_id": b.ID.String(),
	}, &founder.ID)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "A node cannot be its own parent" {
		t.Errorf("error = %v", msg)
	}

	// Omitting parent_id detaches the node back to the root.
	w = doJSON(t, router, http.MethodPut, "/api/company/subsidiaries/"+b.ID.String(), map[string]interface{}{
		"position_x": 5.0,
	}, &founder.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	// Reset the struct: gorm leaves a stale pointer value in place when
	// scanning a NULL column into a reused destination.
	moved = company.SubsidiaryNode{}
	db.First(&moved, "id = ?", b.ID)
	if moved.ParentID != nil {
		t.Errorf("parent_id = %v, want nil", moved.ParentID)
	}
}

func TestDeleteSubsidiaryOrphansChildren(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db)

	founder := createUser(t, db, "founder@example.com", models.UserTypeFounder)
	profile := seedCompanyProfile(t, db, founder.ID, "Acme Robotics")

	parent := company.SubsidiaryNode{ProfileID: profile.ID, Label: "Holding"}
	db.Create(&parent)
	child := company.SubsidiaryNode{ProfileID: profile.ID, Label: "Subsidiary", ParentID: &parent.ID}
	db.Create(&child)

	w := doJSON(t, router, http.MethodDelete, "/api/company/subsidiaries/"+parent.ID.String(), nil, &founder.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&company.SubsidiaryNode{}).Where("id = ?", parent.ID).Count(&count)
	if count != 0 {
		t.Error("parent node still present")
	}

	var orphan company.SubsidiaryNode
	if err := db.First(&orphan, "id = ?", child.ID).Error; err != nil {
		t.Fatalf("child node missing: %v", err)
	}
	if orphan.ParentID != nil {
		t.Errorf("child parent_id = %v, want nil after parent deletion", orphan.ParentID)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/company/subsidiaries/"+uuid.NewString(), nil, &founder.ID)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown node: status = %d, want 404", w.Code)
	}
}
