package handlers

import (
	"net/http"

	"fundpitch-backend/notification-service/services"

	"github.com/gin-gonic/gin"
)

// WhatsAppHandler exposes the WhatsApp gateway endpoints.
type WhatsAppHandler struct {
	whatsappService *services.WhatsAppService
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(whatsappService *services.WhatsAppService) *WhatsAppHandler {
	return &WhatsAppHandler{whatsappService: whatsappService}
}

// WhatsAppInviteRequest is the WhatsApp invite dispatch payload.
type WhatsAppInviteRequest struct {
	Phone       string `json:"phone" binding:"required"`
	InviteeName string `json:"invitee_name"`
	CompanyName string `json:"company_name" binding:"required"`
	Role        string `json:"role" binding:"required"`
	InviteToken string `json:"invite_token" binding:"required"`
}

// SendInvite dispatches the invite WhatsApp template message
// @Summary Send WhatsApp invite
// @Description Send the invitation template message through the WhatsApp gateway
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body WhatsAppInviteRequest true "WhatsApp invite payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 502 {object} map[string]string "Gateway failure"
// @Router /notifications/whatsapp/invite [post]
func (h *WhatsAppHandler) SendInvite(c *gin.Context) {
	var req WhatsAppInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.whatsappService.SendInviteTemplate(
		req.Phone, req.InviteeName, req.CompanyName, req.Role, req.InviteToken)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to send WhatsApp invite",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "WhatsApp invite sent successfully",
	})
}
