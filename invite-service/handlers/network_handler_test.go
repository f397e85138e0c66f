package handlers

import (
	"net/http"
	"testing"
	"time"

	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/database/models/company"
	"fundpitch-backend/shared/database/models/individual"
	"fundpitch-backend/shared/database/models/invite"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestGetInbox(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db, &stubNotifier{})

	founder := createUser(t, db, "founder@example.com", "", models.UserTypeFounder)
	other := createUser(t, db, "other@example.com", "", models.UserTypeFounder)

	// Only accepted-but-unapproved invites belong in the inbox.
	pending := seedAcceptedInvite(t, db, founder.ID, "pending@example.com", "Investor", false)
	seedInvite(t, db, founder.ID, "sent@example.com", "Investor")
	seedAcceptedInvite(t, db, founder.ID, "approved@example.com", "Advisor", true)
	seedAcceptedInvite(t, db, other.ID, "elsewhere@example.com", "Investor", false)

	w := doJSON(t, router, http.MethodGet, "/api/network/inbox", nil, &founder.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	entries := decodeBody(t, w)["data"].([]interface{})
	if len(entries) != 1 {
		t.Fatalf("inbox entries = %d, want 1", len(entries))
	}
	entry := entries[0].(map[string]interface{})
	if entry["invite_id"] != pending.ID.String() {
		t.Errorf("invite_id = %v, want %s", entry["invite_id"], pending.ID)
	}
	if entry["invitee_email"] != "pending@example.com" {
		t.Errorf("invitee_email = %v", entry["invitee_email"])
	}
}

func TestGetNetwork(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db, &stubNotifier{})

	companyA := createUser(t, db, "a@example.com", "", models.UserTypeFounder)
	companyB := createUser(t, db, "b@example.com", "", models.UserTypeFounder)
	db.Create(&company.Profile{UserID: companyA.ID, CompanyName: "Acme Robotics"})

	investor := createUser(t, db, "investor@example.com", "", models.UserTypeInvestor)

	// One invite accepted by user ID, another addressed to the same
	// email before the account existed, plus a duplicate from company A.
	linkAccepted(t, db, companyA.ID, investor.ID, "Investor", true)
	linkAccepted(t, db, companyA.ID, investor.ID, "Investor", true)
	inv := seedInvite(t, db, companyB.ID, "investor@example.com", "Advisor")
	inv.Status = invite.StatusAccepted
	db.Save(&inv)

	w := doJSON(t, router, http.MethodGet, "/api/network", nil, &investor.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	entries := decodeBody(t, w)["data"].([]interface{})
	if len(entries) != 2 {
		t.Fatalf("network entries = %d, want 2 (deduplicated per company)", len(entries))
	}

	byCompany := map[string]map[string]interface{}{}
	for _, raw := range entries {
		e := raw.(map[string]interface{})
		byCompany[e["company_user_id"].(string)] = e
	}
	if e := byCompany[companyA.ID.String()]; e == nil || e["company_name"] != "Acme Robotics" {
		t.Errorf("company A entry = %+v", e)
	}
	if e := byCompany[companyB.ID.String()]; e == nil || e["is_user_approved"] != false {
		t.Errorf("company B entry = %+v", e)
	}
}

func TestGetAdvisorsAndClients(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(db, &stubNotifier{})

	founder := createUser(t, db, "founder@example.com", "", models.UserTypeFounder)

	advisor := createUser(t, db, "advisor@example.com", "", models.UserTypeAdvisor)
	db.Create(&individual.Profile{UserID: advisor.ID, FullName: "Asha Raman"})
	investor := createUser(t, db, "investor@example.com", "", models.UserTypeInvestor)
	provider := createUser(t, db, "provider@example.com", "", models.UserTypeServiceProvider)
	wellWisher := createUser(t, db, "well@example.com", "", models.UserTypeWellWisher)

	linkAccepted(t, db, founder.ID, advisor.ID, "Advisor", true)
	linkAccepted(t, db, founder.ID, investor.ID, "Investor", true)
	linkAccepted(t, db, founder.ID, provider.ID, "Service Provider", true)
	linkAccepted(t, db, founder.ID, wellWisher.ID, "Well-wisher", true)
	// Unapproved members never make the lists.
	linkAccepted(t, db, founder.ID, createUser(t, db, "x@example.com", "", models.UserTypeAdvisor).ID, "Advisor", false)

	w := doJSON(t, router, http.MethodGet, "/api/network/advisors", nil, &founder.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("advisors status = %d, body = %s", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("advisors = %d, want 1", len(items))
	}
	member := items[0].(map[string]interface{})
	if member["user_id"] != advisor.ID.String() {
		t.Errorf("advisor user_id = %v", member["user_id"])
	}
	// The individual profile name wins over the invite's invitee_name.
	if member["name"] != "Asha Raman" {
		t.Errorf("advisor name = %v, want Asha Raman", member["name"])
	}
	if data["pagination"] == nil {
		t.Error("pagination missing")
	}

	w = doJSON(t, router, http.MethodGet, "/api/network/clients", nil, &founder.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("clients status = %d, body = %s", w.Code, w.Body.String())
	}
	items = decodeBody(t, w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("clients = %d, want 2 (investor and service provider)", len(items))
	}
	for _, raw := range items {
		ut := raw.(map[string]interface{})["user_type"]
		if ut != string(models.UserTypeInvestor) && ut != string(models.UserTypeServiceProvider) {
			t.Errorf("unexpected client user_type %v", ut)
		}
	}
}

// seedAcceptedInvite writes an accepted invite with the given approval
// flag. No backing user is created for the invitee.
func seedAcceptedInvite(t *testing.T, db *gorm.DB, companyUserID uuid.UUID, email, role string, approved bool) invite.Invite {
	t.Helper()

	now := time.Now()
	inv := invite.Invite{
		CompanyUserID:  companyUserID,
		InviterID:      companyUserID,
		InviteeEmail:   email,
		Role:           role,
		Channel:        invite.ChannelEmail,
		Status:         invite.StatusAccepted,
		IsUserApproved: approved,
		AcceptedAt:     &now,
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("failed to seed accepted invite: %v", err)
	}
	return inv
}

// linkAccepted writes an accepted invite bound to an existing user.
func linkAccepted(t *testing.T, db *gorm.DB, companyUserID, acceptedUserID uuid.UUID, role string, approved bool) invite.Invite {
	t.Helper()

	now := time.Now()
	inv := invite.Invite{
		CompanyUserID:  companyUserID,
		InviterID:      companyUserID,
		Role:           role,
		Channel:        invite.ChannelEmail,
		Status:         invite.StatusAccepted,
		IsUserApproved: approved,
		AcceptedUserID: &acceptedUserID,
		AcceptedAt:     &now,
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("failed to link accepted invite: %v", err)
	}
	return inv
}
