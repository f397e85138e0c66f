package handlers

import (
	"net/http"
	"time"

	"fundpitch-backend/notification-service/services"

	"github.com/gin-gonic/gin"
)

// HandleWebSocket handles WebSocket connection requests
// @Summary WebSocket Connection
// @Description Establish WebSocket connection for live invite events
// @Tags websocket
// @Param user_id path string true "User ID"
// @Router /ws/invites/{user_id} [get]
func HandleWebSocket(c *gin.Context) {
	wsManager := services.GetWebSocketManager()
	wsManager.HandleWebSocketConnection(c)
}

// SendEventRequest is the internal push payload other services post.
type SendEventRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Event   string `json:"event" binding:"required"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SendWebSocketEvent pushes an invite event to a connected user
// @Summary Send invite event
// @Description Push a live invite event to a specific user (internal)
// @Tags websocket
// @Accept json
// @Produce json
// @Param payload body SendEventRequest true "Event payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /ws/send [post]
func SendWebSocketEvent(c *gin.Context) {
	var request SendEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	wsManager := services.GetWebSocketManager()

	event := &services.InviteEvent{
		Type:      "invite",
		Event:     request.Event,
		Title:     request.Title,
		Message:   request.Message,
		UserID:    request.UserID,
		Timestamp: time.Now(),
	}

	// A disconnected user is not an error worth failing the caller for.
	if err := wsManager.SendToUser(request.UserID, event); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "User not connected, event dropped",
			"user_id": request.UserID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invite event sent successfully",
		"user_id": request.UserID,
	})
}
