package handlers

import (
	"errors"
	"net/http"

	"fundpitch-backend/shared/database/models/engagement"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EndorsementHandler manages testimonials posted to companies.
type EndorsementHandler struct {
	db *gorm.DB
}

// NewEndorsementHandler creates a new endorsement handler
func NewEndorsementHandler(db *gorm.DB) *EndorsementHandler {
	return &EndorsementHandler{db: db}
}

// EndorsementAttachmentRequest references an already-uploaded object.
type EndorsementAttachmentRequest struct {
	ObjectKey string `json:"object_key" binding:"required"`
	FileName  string `json:"file_name"`
}

// CreateEndorsementRequest is the testimonial payload. AudioKey points at a
// voice note uploaded through the media service.
type CreateEndorsementRequest struct {
	CompanyUserID string                         `json:"company_user_id" binding:"required"`
	Message       string                         `json:"message"`
	AudioKey      string                         `json:"audio_key"`
	Attachments   []EndorsementAttachmentRequest `json:"attachments"`
}

// CreateEndorsement posts a testimonial to a company
// @Summary Create endorsement
// @Description Post a testimonial (text, voice note, attachments) to a company
// @Tags endorsements
// @Accept json
// @Produce json
// @Param endorsement body CreateEndorsementRequest true "Testimonial details"
// @Security BearerAuth
// @Success 201 {object} engagement.Endorsement
// @Failure 400 {object} map[string]string "Validation error"
// @Router /endorsements [post]
func (h *EndorsementHandler) CreateEndorsement(c *gin.Context) {
	var req CreateEndorsementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyUserID, err := uuid.Parse(req.CompanyUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company user ID format"})
		return
	}

	if req.Message == "" && req.AudioKey == "" && len(req.Attachments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Endorsement needs a message, voice note or attachment"})
		return
	}

	endorsement := engagement.Endorsement{
		UserID:        c.MustGet("userID").(uuid.UUID),
		CompanyUserID: companyUserID,
		Message:       req.Message,
		AudioKey:      req.AudioKey,
	}
	for _, a := range req.Attachments {
		endorsement.Attachments = append(endorsement.Attachments, engagement.EndorsementAttachment{
			ObjectKey: a.ObjectKey,
			FileName:  a.FileName,
		})
	}

	if err := h.db.Create(&endorsement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create endorsement", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    endorsement,
	})
}

// GetCompanyEndorsements lists testimonials a company received
// @Summary List company endorsements
// @Description Testimonials posted to the caller's company, most recent first
// @Tags endorsements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /endorsements [get]
func (h *EndorsementHandler) GetCompanyEndorsements(c *gin.Context) {
	callerID := c.MustGet("userID").(uuid.UUID)

	var endorsements []engagement.Endorsement
	err := h.db.Preload("Attachments").
		Where("company_user_id = ?", callerID).
		Order("created_at DESC").
		Find(&endorsements).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load endorsements", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    endorsements,
	})
}

// ApproveEndorsement makes a testimonial publicly visible
// @Summary Approve endorsement
// @Tags endorsements
// @Produce json
// @Param id path string true "Endorsement ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} engagement.Endorsement
// @Failure 404 {object} map[string]string "Endorsement not found"
// @Router /endorsements/{id}/approve [put]
func (h *EndorsementHandler) ApproveEndorsement(c *gin.Context) {
	endorsementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endorsement ID format"})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var endorsement engagement.Endorsement
	if err := h.db.First(&endorsement, "id = ?", endorsementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Endorsement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up endorsement", "message": err.Error()})
		return
	}

	if endorsement.CompanyUserID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the receiving company can approve an endorsement"})
		return
	}

	if err := h.db.Model(&endorsement).Update("is_approved", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve endorsement", "message": err.Error()})
		return
	}
	endorsement.IsApproved = true

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    endorsement,
	})
}
