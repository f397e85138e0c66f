package handlers

import (
	"errors"
	"net/http"
	"time"

	"fundpitch-backend/shared/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserTypeHandler manages self-service and admin-approved type changes.
type UserTypeHandler struct {
	db *gorm.DB
}

// NewUserTypeHandler creates a new user type handler
func NewUserTypeHandler(db *gorm.DB) *UserTypeHandler {
	return &UserTypeHandler{db: db}
}

// ChangeUserTypeRequest names the type the caller wants to switch to.
type ChangeUserTypeRequest struct {
	UserType string `json:"user_type" binding:"required"`
}

// ChangeUserType switches the caller's type, or queues an admin request
// @Summary Change user type
// @Description Self-service type change; after the quota is used up the change needs admin approval
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangeUserTypeRequest true "Target user type"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Type changed"
// @Success 202 {object} map[string]interface{} "Queued for admin approval"
// @Failure 400 {object} map[string]string "Invalid user type"
// @Router /auth/user-type [post]
func (h *UserTypeHandler) ChangeUserType(c *gin.Context) {
	var req ChangeUserTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidUserType(req.UserType) || req.UserType == string(models.UserTypeAdmin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user type"})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var user models.User
	if err := h.db.First(&user, "id = ?", callerID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user", "message": err.Error()})
		return
	}

	if user.TypeChangeCount >= models.MaxSelfTypeChanges {
		request := models.UserTypeChangeRequest{
			UserID:        user.ID,
			RequestedType: models.UserType(req.UserType),
			Status:        models.TypeChangeRequestPending,
		}
		if err := h.db.Create(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create change request", "message": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"success": true,
			"message": "Type change quota exhausted, request queued for admin approval",
			"data":    request,
		})
		return
	}

	updates := map[string]interface{}{
		"user_type":         req.UserType,
		"type_change_count": user.TypeChangeCount + 1,
	}
	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change user type", "message": err.Error()})
		return
	}
	user.UserType = models.UserType(req.UserType)
	user.TypeChangeCount++

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// ListTypeChangeRequests shows pending requests to an admin
// @Summary List type change requests
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/user-type/requests [get]
func (h *UserTypeHandler) ListTypeChangeRequests(c *gin.Context) {
	var requests []models.UserTypeChangeRequest
	err := h.db.Preload("User").
		Where("status = ?", models.TypeChangeRequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load change requests", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// ApproveTypeChange applies a queued type change
// @Summary Approve type change request
// @Tags auth
// @Produce json
// @Param id path string true "Request ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Request not found"
// @Router /auth/user-type/requests/{id}/approve [put]
func (h *UserTypeHandler) ApproveTypeChange(c *gin.Context) {
	h.decideTypeChange(c, true)
}

// RejectTypeChange declines a queued type change
// @Summary Reject type change request
// @Tags auth
// @Produce json
// @Param id path string true "Request ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Request not found"
// @Router /auth/user-type/requests/{id}/reject [put]
func (h *UserTypeHandler) RejectTypeChange(c *gin.Context) {
	h.decideTypeChange(c, false)
}

func (h *UserTypeHandler) decideTypeChange(c *gin.Context, approve bool) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID format"})
		return
	}

	adminID := c.MustGet("userID").(uuid.UUID)
	now := time.Now()

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var request models.UserTypeChangeRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			return err
		}
		if request.Status != models.TypeChangeRequestPending {
			return errRequestDecided
		}

		status := models.TypeChangeRequestRejected
		if approve {
			status = models.TypeChangeRequestApproved
		}
		updates := map[string]interface{}{
			"status":     status,
			"decided_by": adminID,
			"decided_at": now,
		}
		if err := tx.Model(&request).Updates(updates).Error; err != nil {
			return err
		}

		if approve {
			return tx.Model(&models.User{}).
				Where("id = ?", request.UserID).
				Update("user_type", request.RequestedType).Error
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Change request not found"})
		case errors.Is(err, errRequestDecided):
			c.JSON(http.StatusConflict, gin.H{"error": "Change request already decided"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide change request", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Change request decided",
	})
}

var errRequestDecided = errors.New("change request already decided")
