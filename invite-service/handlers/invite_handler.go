package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fundpitch-backend/shared/clients"
	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/database/models/individual"
	"fundpitch-backend/shared/database/models/invite"
	utils "fundpitch-backend/shared/utils/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteNotifier is the slice of the notification client the invite
// engine needs. Dispatch failures are recorded, never rolled back.
type InviteNotifier interface {
	SendInviteEmail(req clients.InviteEmailRequest) error
	SendWhatsAppInvite(req clients.WhatsAppInviteRequest) error
	PushInviteEvent(req clients.InviteEventRequest) error
}

// InviteHandler implements the invite engine.
type InviteHandler struct {
	db       *gorm.DB
	notifier InviteNotifier
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(db *gorm.DB, notifier InviteNotifier) *InviteHandler {
	return &InviteHandler{db: db, notifier: notifier}
}

// CreateInviteRequest is the payload for direct and chained invites.
// Chained invites additionally carry the parent invite's public token.
type CreateInviteRequest struct {
	InviteeEmail string `json:"invitee_email"`
	InviteePhone string `json:"invitee_phone"`
	InviteeName  string `json:"invitee_name"`
	Role         string `json:"role" binding:"required"`
	Channel      string `json:"channel" binding:"required,oneof=email whatsapp"`

	ParentInviteToken string `json:"parent_invite_token"`
}

// AcceptInviteRequest identifies the accepting party.
type AcceptInviteRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	FullName string `json:"full_name"`
}

// InviteResponse is the invite representation returned to clients.
type InviteResponse struct {
	InviteToken    string `json:"invite_token"`
	CompanyUserID  string `json:"company_user_id"`
	InviteLevel    int    `json:"invite_level"`
	InviteeEmail   string `json:"invitee_email,omitempty"`
	InviteePhone   string `json:"invitee_phone,omitempty"`
	InviteeName    string `json:"invitee_name,omitempty"`
	Role           string `json:"role"`
	Channel        string `json:"channel"`
	Status         string `json:"status"`
	IsUserApproved bool   `json:"is_user_approved"`
	SendError      string `json:"send_error,omitempty"`
	CreatedAt      string `json:"created_at"`
}

func toInviteResponse(inv *invite.Invite) InviteResponse {
	return InviteResponse{
		InviteToken:    inv.InviteToken.String(),
		CompanyUserID:  inv.CompanyUserID.String(),
		InviteLevel:    inv.InviteLevel,
		InviteeEmail:   inv.InviteeEmail,
		InviteePhone:   inv.InviteePhone,
		InviteeName:    inv.InviteeName,
		Role:           inv.Role,
		Channel:        string(inv.Channel),
		Status:         string(inv.Status),
		IsUserApproved: inv.IsUserApproved,
		SendError:      inv.SendError,
		CreatedAt:      inv.CreatedAt.Format(time.RFC3339),
	}
}

// CreateDirectInvite creates a level-0 invite from a company
// @Summary Create direct invite
// @Description Invite a contact on behalf of the caller's company (level 0)
// @Tags invites
// @Accept json
// @Produce json
// @Param invite body CreateInviteRequest true "Invite details"
// @Security BearerAuth
// @Success 201 {object} handlers.InviteResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /invites [post]
func (h *InviteHandler) CreateDirectInvite(c *gin.Context) {
	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var caller models.User
	if err := h.db.First(&caller, "id = ?", callerID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	inv, status, err := h.createInvite(&caller, &req, nil, caller.ID)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    toInviteResponse(inv),
	})
}

// CreateChainedInvite creates a level-N+1 invite under an approved parent
// @Summary Create chained invite
// @Description Extend an invite from an accepted and approved invitee (level N+1)
// @Tags invites
// @Accept json
// @Produce json
// @Param invite body CreateInviteRequest true "Invite details with parent_invite_token"
// @Security BearerAuth
// @Success 201 {object} handlers.InviteResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Invalid parent invite or not authorized"
// @Router /invites/chained [post]
func (h *InviteHandler) CreateChainedInvite(c *gin.Context) {
	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParentInviteToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parent_invite_token is required"})
		return
	}

	parentToken, err := uuid.Parse(req.ParentInviteToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent invite token format"})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var caller models.User
	if err := h.db.First(&caller, "id = ?", callerID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var parent invite.Invite
	if err := h.db.First(&parent, "invite_token = ?", parentToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid parent invite or not authorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up parent invite", "message": err.Error()})
		return
	}

	// The chain gate: an invitee may only extend invites once their own
	// invite is accepted AND approved by the company.
	if !parent.CanChain() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid parent invite or not authorized"})
		return
	}

	inv, status, err := h.createInvite(&caller, &req, &parent, parent.CompanyUserID)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    toInviteResponse(inv),
	})
}

// createInvite validates, persists and dispatches an invite. Returns
// the invite, an HTTP status for the error case, and the error.
func (h *InviteHandler) createInvite(caller *models.User, req *CreateInviteRequest, parent *invite.Invite, companyUserID uuid.UUID) (*invite.Invite, int, error) {
	if err := utils.ValidateContact(req.InviteeEmail, req.InviteePhone); err != nil {
		return nil, http.StatusBadRequest, err
	}

	// Self-invite is rejected before any row is written.
	if (req.InviteeEmail != "" && req.InviteeEmail == caller.Email) ||
		(req.InviteePhone != "" && req.InviteePhone == caller.Phone) {
		return nil, http.StatusBadRequest, errors.New("You cannot invite yourself")
	}

	inv := &invite.Invite{
		CompanyUserID: companyUserID,
		InviterID:     caller.ID,
		InviteeEmail:  req.InviteeEmail,
		InviteePhone:  req.InviteePhone,
		InviteeName:   req.InviteeName,
		Role:          req.Role,
		Channel:       invite.Channel(req.Channel),
		Status:        invite.StatusSent,
	}
	if parent != nil {
		inv.ParentInviteID = &parent.ID
		inv.InviteLevel = parent.InviteLevel + 1
	}

	if err := h.db.Create(inv).Error; err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to create invite: %w", err)
	}

	// Dispatch happens after the row exists. A failed send is recorded
	// on the invite and surfaced in the response, but the invite stays.
	if err := h.dispatch(inv); err != nil {
		inv.SendError = err.Error()
		h.db.Model(inv).Update("send_error", inv.SendError)
	}

	return inv, 0, nil
}

func (h *InviteHandler) dispatch(inv *invite.Invite) error {
	companyName := h.companyDisplayName(inv.CompanyUserID)

	switch inv.Channel {
	case invite.ChannelWhatsApp:
		return h.notifier.SendWhatsAppInvite(clients.WhatsAppInviteRequest{
			Phone:       inv.InviteePhone,
			InviteeName: inv.InviteeName,
			CompanyName: companyName,
			Role:        inv.Role,
			InviteToken: inv.InviteToken.String(),
		})
	default:
		return h.notifier.SendInviteEmail(clients.InviteEmailRequest{
			Email:       inv.InviteeEmail,
			InviteeName: inv.InviteeName,
			CompanyName: companyName,
			InviterName: h.userDisplayName(inv.InviterID),
			Role:        inv.Role,
			InviteToken: inv.InviteToken.String(),
		})
	}
}

// AcceptInvite accepts an invite by its public token
// @Summary Accept invite
// @Description Accept an invitation; creates the user and profile when needed and returns a session token
// @Tags invites
// @Accept json
// @Produce json
// @Param token path string true "Invite public token" format(uuid)
// @Param identity body AcceptInviteRequest true "Accepting identity"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Invite not found"
// @Failure 409 {object} map[string]string "Invite already declined"
// @Router /invites/{token}/accept [post]
func (h *InviteHandler) AcceptInvite(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invite token format"})
		return
	}

	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateContact(req.Email, req.Phone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var inv invite.Invite
	var user models.User

	// Find invite + find-or-create user + flip status atomically, so a
	// decline can never race an accept into a half-terminal state.
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inv, "invite_token = ?", token).Error; err != nil {
			return err
		}

		if inv.Status == invite.StatusDeclined {
			return errInviteDeclined
		}

		if err := tx.Where("email = ? AND email != ''", req.Email).
			Or("phone = ? AND phone != ''", req.Phone).
			First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			user = models.User{
				Email:    req.Email,
				Phone:    req.Phone,
				UserType: roleToUserType(inv.Role),
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			prof := individual.Profile{
				UserID:   user.ID,
				FullName: req.FullName,
				Email:    req.Email,
				Phone:    req.Phone,
			}
			if err := tx.Create(&prof).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		inv.Status = invite.StatusAccepted
		inv.AcceptedUserID = &user.ID
		inv.AcceptedAt = &now
		return tx.Save(&inv).Error
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invite not found"})
		case errors.Is(txErr, errInviteDeclined):
			c.JSON(http.StatusConflict, gin.H{"error": "Invite has already been declined"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept invite", "message": txErr.Error()})
		}
		return
	}

	// Session for the accepting user is a side effect of acceptance.
	sessionToken, expiresAt, err := utils.GenerateJWT(user.ID, user.Email, user.Phone, string(user.UserType))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "message": err.Error()})
		return
	}

	// Best-effort live event to the company dashboard.
	h.notifier.PushInviteEvent(clients.InviteEventRequest{
		UserID:  inv.CompanyUserID.String(),
		Event:   "invite_accepted",
		Title:   "Invite accepted",
		Message: fmt.Sprintf("%s accepted your invitation", displayName(req.FullName, req.Email, req.Phone)),
	})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       toInviteResponse(&inv),
		"token":      sessionToken,
		"expires_at": expiresAt,
		"user_id":    user.ID,
	})
}

var errInviteDeclined = errors.New("invite already declined")

// DeclineInvite declines an invite by its public token
// @Summary Decline invite
// @Description Decline an invitation; declined is terminal
// @Tags invites
// @Produce json
// @Param token path string true "Invite public token" format(uuid)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Invite not found"
// @Failure 409 {object} map[string]string "Invite already accepted"
// @Router /invites/{token}/decline [post]
func (h *InviteHandler) DeclineInvite(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invite token format"})
		return
	}

	var inv invite.Invite
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inv, "invite_token = ?", token).Error; err != nil {
			return err
		}

		// Accept and decline are mutually exclusive terminal outcomes.
		if inv.Status == invite.StatusAccepted {
			return errInviteAccepted
		}
		if inv.Status == invite.StatusDeclined {
			return nil
		}

		inv.Status = invite.StatusDeclined
		return tx.Save(&inv).Error
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invite not found"})
		case errors.Is(txErr, errInviteAccepted):
			c.JSON(http.StatusConflict, gin.H{"error": "Invite has already been accepted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline invite", "message": txErr.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toInviteResponse(&inv),
	})
}

var errInviteAccepted = errors.New("invite already accepted")

// ApproveInvite sets the company-side approval flag
// @Summary Approve invitee
// @Description Approve an accepted invitee, allowing them to extend further invites
// @Tags invites
// @Produce json
// @Param id path string true "Invite ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Invite not found"
// @Failure 409 {object} map[string]string "Invite not accepted yet"
// @Router /invites/{id}/approve [put]
func (h *InviteHandler) ApproveInvite(c *gin.Context) {
	h.setApproval(c, true)
}

// RejectInvite clears the company-side approval flag
// @Summary Reject invitee
// @Description Reject an accepted invitee, blocking further chained invites
// @Tags invites
// @Produce json
// @Param id path string true "Invite ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Invite not found"
// @Router /invites/{id}/reject [put]
func (h *InviteHandler) RejectInvite(c *gin.Context) {
	h.setApproval(c, false)
}

func (h *InviteHandler) setApproval(c *gin.Context, approved bool) {
	inviteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invite ID format"})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var inv invite.Invite
	if err := h.db.First(&inv, "id = ?", inviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invite not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up invite", "message": err.Error()})
		return
	}

	// Only the root company decides approval.
	if inv.CompanyUserID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the inviting company can change approval"})
		return
	}

	if approved && inv.Status != invite.StatusAccepted {
		c.JSON(http.StatusConflict, gin.H{"error": "Only accepted invites can be approved"})
		return
	}

	if err := h.db.Model(&inv).Update("is_user_approved", approved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update approval", "message": err.Error()})
		return
	}
	inv.IsUserApproved = approved

	if approved && inv.AcceptedUserID != nil {
		h.notifier.PushInviteEvent(clients.InviteEventRequest{
			UserID:  inv.AcceptedUserID.String(),
			Event:   "invite_approved",
			Title:   "You were approved",
			Message: fmt.Sprintf("%s approved you; you can now invite others", h.companyDisplayName(inv.CompanyUserID)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toInviteResponse(&inv),
	})
}

// GetInvite returns the public view of an invite by token, used by the
// accept page to render company and role before the user decides.
// @Summary Get invite by token
// @Tags invites
// @Produce json
// @Param token path string true "Invite public token" format(uuid)
// @Success 200 {object} handlers.InviteResponse
// @Failure 404 {object} map[string]string "Invite not found"
// @Router /invites/{token} [get]
func (h *InviteHandler) GetInvite(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invite token format"})
		return
	}

	var inv invite.Invite
	if err := h.db.First(&inv, "invite_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invite not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up invite", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"invite":       toInviteResponse(&inv),
			"company_name": h.companyDisplayName(inv.CompanyUserID),
		},
	})
}

// roleToUserType maps an invite role label onto a user type for the
// account created at acceptance.
func roleToUserType(role string) models.UserType {
	lower := strings.ToLower(role)
	switch {
	case strings.Contains(lower, "invest"):
		return models.UserTypeInvestor
	case strings.Contains(lower, "advis"), strings.Contains(lower, "sme"):
		return models.UserTypeAdvisor
	case strings.Contains(lower, "service"):
		return models.UserTypeServiceProvider
	case strings.Contains(lower, "well"):
		return models.UserTypeWellWisher
	default:
		return models.UserTypeOthers
	}
}

func (h *InviteHandler) companyDisplayName(companyUserID uuid.UUID) string {
	var name string
	h.db.Table("company_profiles").Select("company_name").Where("user_id = ?", companyUserID).Scan(&name)
	if name == "" {
		return "A FundPitch company"
	}
	return name
}

func (h *InviteHandler) userDisplayName(userID uuid.UUID) string {
	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return ""
	}

	var name string
	h.db.Table("company_profiles").Select("company_name").Where("user_id = ?", userID).Scan(&name)
	if name != "" {
		return name
	}
	h.db.Table("individual_profiles").Select("full_name").Where("user_id = ?", userID).Scan(&name)
	if name != "" {
		return name
	}
	if user.Email != "" {
		return user.Email
	}
	return user.Phone
}

func displayName(fullName, email, phone string) string {
	if fullName != "" {
		return fullName
	}
	if email != "" {
		return email
	}
	return phone
}
