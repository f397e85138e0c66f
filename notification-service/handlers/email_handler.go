package handlers

import (
	"net/http"

	"fundpitch-backend/notification-service/services"
	"fundpitch-backend/shared/config"

	"github.com/gin-gonic/gin"
)

// EmailHandler exposes the outbound email endpoints.
type EmailHandler struct {
	emailService *services.EmailService
	config       *config.Config
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(emailService *services.EmailService, cfg *config.Config) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
		config:       cfg,
	}
}

// InviteEmailRequest is the invite email dispatch payload.
type InviteEmailRequest struct {
	Email       string `json:"email" binding:"required,email"`
	InviteeName string `json:"invitee_name"`
	CompanyName string `json:"company_name" binding:"required"`
	InviterName string `json:"inviter_name"`
	Role        string `json:"role" binding:"required"`
	InviteToken string `json:"invite_token" binding:"required"`
}

// OTPEmailRequest is the login OTP dispatch payload.
type OTPEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// SendInviteEmail dispatches the templated invitation email
// @Summary Send invite email
// @Description Send the templated invitation email with an accept link
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body InviteEmailRequest true "Invite email payload"
// @Success 200 {object} services.EmailResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 502 {object} map[string]string "SMTP failure"
// @Router /notifications/email/invite [post]
func (h *EmailHandler) SendInviteEmail(c *gin.Context) {
	var req InviteEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.emailService.SendInviteEmail(
		req.Email, req.InviteeName, req.CompanyName, req.InviterName, req.Role, req.InviteToken)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to send invite email",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SendOTPEmail dispatches a login one-time password
// @Summary Send OTP email
// @Description Send a login one-time password to the given address
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body OTPEmailRequest true "OTP email payload"
// @Success 200 {object} services.EmailResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 502 {object} map[string]string "SMTP failure"
// @Router /notifications/email/otp [post]
func (h *EmailHandler) SendOTPEmail(c *gin.Context) {
	var req OTPEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.emailService.SendOTPEmail(req.Email, req.Code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to send OTP email",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
