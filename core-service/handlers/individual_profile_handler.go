package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"fundpitch-backend/shared/database/models/individual"
	"fundpitch-backend/shared/utils/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IndividualProfileHandler manages the non-founder profile and its
// showcase document list.
type IndividualProfileHandler struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

// NewIndividualProfileHandler creates a new individual profile handler.
// cache may be nil; completion caching then turns off.
func NewIndividualProfileHandler(db *gorm.DB, cm *cache.CacheManager) *IndividualProfileHandler {
	return &IndividualProfileHandler{db: db, cache: cm}
}

func (h *IndividualProfileHandler) invalidateCompletion(userID uuid.UUID) {
	if h.cache != nil {
		h.cache.InvalidateCompletion(userID.String())
	}
}

// UpsertIndividualProfileRequest carries the individual profile fields.
type UpsertIndividualProfileRequest struct {
	FullName     string `json:"full_name"`
	Designation  string `json:"designation"`
	Organization string `json:"organization"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	Bio          string `json:"bio"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	PhotoKey     string `json:"photo_key"`
	LinkedinURL  string `json:"linkedin_url"`
	Experience   string `json:"experience"`
}

// ShowcaseDocumentRequest references an uploaded showcase file.
type ShowcaseDocumentRequest struct {
	Title     string `json:"title"`
	ObjectKey string `json:"object_key" binding:"required"`
	FileName  string `json:"file_name"`
}

// GetMyIndividualProfile returns the caller's individual profile
// @Summary Get own individual profile
// @Tags individual
// @Produce json
// @Security BearerAuth
// @Success 200 {object} individual.Profile
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /individual/profile [get]
func (h *IndividualProfileHandler) GetMyIndividualProfile(c *gin.Context) {
	h.getProfile(c, c.MustGet("userID").(uuid.UUID))
}

// GetIndividualProfile returns an individual profile by owner user id
// @Summary Get individual profile by user
// @Tags individual
// @Produce json
// @Param user_id path string true "Owner user ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} individual.Profile
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /individual/profile/{user_id} [get]
func (h *IndividualProfileHandler) GetIndividualProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	h.getProfile(c, userID)
}

func (h *IndividualProfileHandler) getProfile(c *gin.Context, userID uuid.UUID) {
	var profile individual.Profile
	if err := h.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Individual profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load individual profile", "message": err.Error()})
		return
	}

	var documents []individual.ShowcaseDocument
	h.db.Where("profile_id = ?", profile.ID).Order("created_at DESC").Find(&documents)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"profile":            profile,
			"showcase_documents": documents,
		},
	})
}

// UpsertIndividualProfile creates or updates the caller's profile
// @Summary Upsert own individual profile
// @Tags individual
// @Accept json
// @Produce json
// @Param profile body UpsertIndividualProfileRequest true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} individual.Profile
// @Router /individual/profile [put]
func (h *IndividualProfileHandler) UpsertIndividualProfile(c *gin.Context) {
	var req UpsertIndividualProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var profile individual.Profile
	err := h.db.First(&profile, "user_id = ?", callerID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load individual profile", "message": err.Error()})
		return
	}

	profile.UserID = callerID
	profile.FullName = req.FullName
	profile.Designation = req.Designation
	profile.Organization = req.Organization
	profile.Email = req.Email
	profile.Phone = req.Phone
	profile.Bio = req.Bio
	profile.Address = req.Address
	profile.City = req.City
	profile.Country = req.Country
	profile.PhotoKey = req.PhotoKey
	profile.LinkedinURL = req.LinkedinURL
	profile.Experience = req.Experience

	if err := h.db.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save individual profile", "message": err.Error()})
		return
	}

	h.invalidateCompletion(callerID)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// AddShowcaseDocument attaches an uploaded file to the profile
// @Summary Add showcase document
// @Description Attach an uploaded file to the caller's profile, capped at 5
// @Tags individual
// @Accept json
// @Produce json
// @Param document body ShowcaseDocumentRequest true "Document reference"
// @Security BearerAuth
// @Success 201 {object} individual.ShowcaseDocument
// @Failure 400 {object} map[string]string "Document limit reached"
// @Router /individual/showcase-documents [post]
func (h *IndividualProfileHandler) AddShowcaseDocument(c *gin.Context) {
	var req ShowcaseDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var profile individual.Profile
	if err := h.db.First(&profile, "user_id = ?", callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Individual profile not found", "message": "Create your profile first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load individual profile", "message": err.Error()})
		return
	}

	var count int64
	h.db.Model(&individual.ShowcaseDocument{}).Where("profile_id = ?", profile.ID).Count(&count)
	if count >= individual.MaxShowcaseDocuments {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Document limit reached",
			"message": fmt.Sprintf("A profile can showcase at most %d documents", individual.MaxShowcaseDocuments),
		})
		return
	}

	doc := individual.ShowcaseDocument{
		ProfileID: profile.ID,
		Title:     req.Title,
		ObjectKey: req.ObjectKey,
		FileName:  req.FileName,
	}
	if err := h.db.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add showcase document", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": doc})
}

// DeleteShowcaseDocument removes a showcase document reference
// @Summary Delete showcase document
// @Tags individual
// @Produce json
// @Param id path string true "Document ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Document not found"
// @Router /individual/showcase-documents/{id} [delete]
func (h *IndividualProfileHandler) DeleteShowcaseDocument(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID format"})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var profile individual.Profile
	if err := h.db.First(&profile, "user_id = ?", callerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Individual profile not found"})
		return
	}

	result := h.db.Where("id = ? AND profile_id = ?", docID, profile.ID).Delete(&individual.ShowcaseDocument{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete showcase document", "message": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Showcase document not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Showcase document deleted successfully"})
}
