package handlers

import (
	"errors"
	"net/http"

	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/database/models/company"
	"fundpitch-backend/shared/database/models/individual"
	"fundpitch-backend/shared/utils/cache"
	"fundpitch-backend/shared/utils/profile"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionHandler serves profile-completion percentages. Results are
// cached for a few minutes and invalidated on profile writes.
type CompletionHandler struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

// NewCompletionHandler creates a new completion handler.
// cache may be nil; every request then recomputes.
func NewCompletionHandler(db *gorm.DB, cm *cache.CacheManager) *CompletionHandler {
	return &CompletionHandler{db: db, cache: cm}
}

// GetMyCompletion returns the caller's completion percentage
// @Summary Get own profile completion
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Percentage string like 64%"
// @Router /profile/completion [get]
func (h *CompletionHandler) GetMyCompletion(c *gin.Context) {
	h.completion(c, c.MustGet("userID").(uuid.UUID))
}

// GetCompletion returns a user's completion percentage
// @Summary Get profile completion by user
// @Tags profile
// @Produce json
// @Param user_id path string true "User ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string "Percentage string like 64%"
// @Failure 404 {object} map[string]string "User not found"
// @Router /profile/completion/{user_id} [get]
func (h *CompletionHandler) GetCompletion(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	h.completion(c, userID)
}

func (h *CompletionHandler) completion(c *gin.Context, userID uuid.UUID) {
	if h.cache != nil {
		if cached := h.cache.GetCompletion(userID.String()); cached != "" {
			c.JSON(http.StatusOK, gin.H{"success": true, "completion": cached, "cached": true})
			return
		}
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user", "message": err.Error()})
		return
	}

	var pct string
	if user.IsFounder() {
		pct = h.companyCompletion(userID)
	} else {
		pct = h.individualCompletion(userID)
	}

	if h.cache != nil {
		h.cache.SetCompletion(userID.String(), pct)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "completion": pct})
}

// companyCompletion flattens the profile plus one representative row
// per child table and scores it against the fixed company field list.
func (h *CompletionHandler) companyCompletion(userID uuid.UUID) string {
	var p company.Profile
	if err := h.db.First(&p, "user_id = ?", userID).Error; err != nil {
		return profile.Completion(nil, profile.CompanyFields)
	}

	var (
		km   company.KeyManagement
		bm   company.BoardMember
		bv   company.BusinessVertical
		deck company.CorporateDeck
		fin  company.FinancialDocument
		prod company.Product

		kmP   *company.KeyManagement
		bmP   *company.BoardMember
		bvP   *company.BusinessVertical
		deckP *company.CorporateDeck
		finP  *company.FinancialDocument
		prodP *company.Product
	)
	if err := h.db.Where("profile_id = ?", p.ID).First(&km).Error; err == nil {
		kmP = &km
	}
	if err := h.db.Where("profile_id = ?", p.ID).First(&bm).Error; err == nil {
		bmP = &bm
	}
	if err := h.db.Where("profile_id = ?", p.ID).First(&bv).Error; err == nil {
		bvP = &bv
	}
	if err := h.db.Where("profile_id = ?", p.ID).First(&deck).Error; err == nil {
		deckP = &deck
	}
	if err := h.db.Where("profile_id = ?", p.ID).First(&fin).Error; err == nil {
		finP = &fin
	}
	if err := h.db.Where("profile_id = ?", p.ID).First(&prod).Error; err == nil {
		prodP = &prod
	}

	row := profile.CompanyRow(&p, kmP, bmP, bvP, deckP, finP, prodP)
	return profile.Completion(row, profile.CompanyFields)
}

func (h *CompletionHandler) individualCompletion(userID uuid.UUID) string {
	var p individual.Profile
	if err := h.db.First(&p, "user_id = ?", userID).Error; err != nil {
		return profile.Completion(nil, profile.IndividualFields)
	}
	return profile.Completion(profile.IndividualRow(&p), profile.IndividualFields)
}
