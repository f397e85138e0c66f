package handlers

import (
	"net/http"
	"time"

	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/database/models/invite"
	"fundpitch-backend/shared/utils/query"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NetworkHandler serves the read-only relationship projections built
// from the invite table.
type NetworkHandler struct {
	db *gorm.DB
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(db *gorm.DB) *NetworkHandler {
	return &NetworkHandler{db: db}
}

// InboxEntry is one accepted-but-unapproved invite awaiting a company
// decision.
type InboxEntry struct {
	InviteID     string `json:"invite_id"`
	InviteeName  string `json:"invitee_name"`
	InviteeEmail string `json:"invitee_email,omitempty"`
	InviteePhone string `json:"invitee_phone,omitempty"`
	Role         string `json:"role"`
	InviteLevel  int    `json:"invite_level"`
	AcceptedAt   string `json:"accepted_at,omitempty"`
}

// NetworkEntry is one company an individual is connected to.
type NetworkEntry struct {
	CompanyUserID  string `json:"company_user_id"`
	CompanyName    string `json:"company_name"`
	Role           string `json:"role"`
	IsUserApproved bool   `json:"is_user_approved"`
	ConnectedAt    string `json:"connected_at"`
}

// MemberEntry is one approved invitee on a company's advisor or
// client list.
type MemberEntry struct {
	UserID   string `json:"user_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	UserType string `json:"user_type,omitempty"`
	JoinedAt string `json:"joined_at"`
}

// GetInbox lists accepted invites awaiting company approval
// @Summary Company invite inbox
// @Description Accepted-but-unapproved invites addressed to the caller's company
// @Tags network
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /invites/inbox [get]
func (h *NetworkHandler) GetInbox(c *gin.Context) {
	callerID := c.MustGet("userID").(uuid.UUID)

	var invites []invite.Invite
	err := h.db.Where("company_user_id = ? AND status = ? AND is_user_approved = ?",
		callerID, invite.StatusAccepted, false).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load inbox", "message": err.Error()})
		return
	}

	entries := make([]InboxEntry, 0, len(invites))
	for _, inv := range invites {
		entry := InboxEntry{
			InviteID:     inv.ID.String(),
			InviteeName:  inv.InviteeName,
			InviteeEmail: inv.InviteeEmail,
			InviteePhone: inv.InviteePhone,
			Role:         inv.Role,
			InviteLevel:  inv.InviteLevel,
		}
		if inv.AcceptedAt != nil {
			entry.AcceptedAt = inv.AcceptedAt.Format(time.RFC3339)
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// GetNetwork lists the companies an individual is connected to
// @Summary Individual network
// @Description Companies the caller holds an accepted invite with, annotated with approval
// @Tags network
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /invites/network [get]
func (h *NetworkHandler) GetNetwork(c *gin.Context) {
	callerID := c.MustGet("userID").(uuid.UUID)

	var caller models.User
	if err := h.db.First(&caller, "id = ?", callerID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	// Invites may predate the account, so the match runs on the contact
	// the invite was addressed to, not on accepted_user_id alone.
	var invites []invite.Invite
	err := h.db.Where("status = ?", invite.StatusAccepted).
		Where(h.db.Where("accepted_user_id = ?", callerID).
			Or("invitee_email = ? AND invitee_email != ''", caller.Email).
			Or("invitee_phone = ? AND invitee_phone != ''", caller.Phone)).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load network", "message": err.Error()})
		return
	}

	seen := make(map[uuid.UUID]bool)
	entries := make([]NetworkEntry, 0, len(invites))
	for _, inv := range invites {
		if seen[inv.CompanyUserID] {
			continue
		}
		seen[inv.CompanyUserID] = true

		entries = append(entries, NetworkEntry{
			CompanyUserID:  inv.CompanyUserID.String(),
			CompanyName:    h.companyName(inv.CompanyUserID),
			Role:           inv.Role,
			IsUserApproved: inv.IsUserApproved,
			ConnectedAt:    inv.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// GetAdvisors lists the company's approved advisors
// @Summary Company advisors
// @Description Accepted and approved invitees whose accounts are advisor-typed
// @Tags network
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /invites/advisors [get]
func (h *NetworkHandler) GetAdvisors(c *gin.Context) {
	h.listMembers(c, []models.UserType{models.UserTypeAdvisor})
}

// GetClients lists the company's approved service providers and investors
// @Summary Company clients
// @Description Accepted and approved invitees typed as investors or service providers
// @Tags network
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /invites/clients [get]
func (h *NetworkHandler) GetClients(c *gin.Context) {
	h.listMembers(c, []models.UserType{models.UserTypeInvestor, models.UserTypeServiceProvider})
}

// listMembers is the shared accepted+approved projection filtered by
// the accepted user's type, most recent first.
func (h *NetworkHandler) listMembers(c *gin.Context, types []models.UserType) {
	callerID := c.MustGet("userID").(uuid.UUID)
	params := query.ParseListParams(c)

	base := h.db.Model(&invite.Invite{}).
		Joins("JOIN users ON users.id = invites.accepted_user_id").
		Where("invites.company_user_id = ? AND invites.status = ? AND invites.is_user_approved = ?",
			callerID, invite.StatusAccepted, true).
		Where("users.user_type IN ?", types)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count members", "message": err.Error()})
		return
	}

	var invites []invite.Invite
	err := base.Order("invites.created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&invites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load members", "message": err.Error()})
		return
	}

	entries := make([]MemberEntry, 0, len(invites))
	for _, inv := range invites {
		entry := MemberEntry{
			Name:     inv.InviteeName,
			Email:    inv.InviteeEmail,
			Phone:    inv.InviteePhone,
			Role:     inv.Role,
			JoinedAt: inv.CreatedAt.Format(time.RFC3339),
		}
		if inv.AcceptedUserID != nil {
			entry.UserID = inv.AcceptedUserID.String()
			var user models.User
			if err := h.db.First(&user, "id = ?", *inv.AcceptedUserID).Error; err == nil {
				entry.UserType = string(user.UserType)
				if name := h.individualName(user.ID); name != "" {
					entry.Name = name
				}
			}
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":      entries,
			"pagination": query.BuildPaginationResponse(params.Page, params.Limit, total),
		},
	})
}

func (h *NetworkHandler) companyName(companyUserID uuid.UUID) string {
	var name string
	h.db.Table("company_profiles").Select("company_name").Where("user_id = ?", companyUserID).Scan(&name)
	return name
}

func (h *NetworkHandler) individualName(userID uuid.UUID) string {
	var name string
	h.db.Table("individual_profiles").Select("full_name").Where("user_id = ?", userID).Scan(&name)
	return name
}
