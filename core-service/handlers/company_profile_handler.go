package handlers

import (
	"errors"
	"net/http"

	"fundpitch-backend/shared/database/models/company"
	"fundpitch-backend/shared/utils/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyProfileHandler manages the founder-side company profile and
// its child collections.
type CompanyProfileHandler struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

// NewCompanyProfileHandler creates a new company profile handler.
// cache may be nil; completion caching then turns off.
func NewCompanyProfileHandler(db *gorm.DB, cm *cache.CacheManager) *CompanyProfileHandler {
	return &CompanyProfileHandler{db: db, cache: cm}
}

func (h *CompanyProfileHandler) invalidateCompletion(userID uuid.UUID) {
	if h.cache != nil {
		h.cache.InvalidateCompletion(userID.String())
	}
}

// UpsertCompanyProfileRequest carries the descriptive company fields.
type UpsertCompanyProfileRequest struct {
	CompanyName       string `json:"company_name"`
	Sectors           string `json:"sectors"`
	Stage             string `json:"stage"`
	About             string `json:"about"`
	Address           string `json:"address"`
	City              string `json:"city"`
	State             string `json:"state"`
	Country           string `json:"country"`
	Pincode           string `json:"pincode"`
	Website           string `json:"website"`
	ContactEmail      string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone      string `json:"contact_phone"`
	PhotoKey          string `json:"photo_key"`
	IncorporationYear string `json:"incorporation_year"`
	EmployeeCount     string `json:"employee_count"`
	MarketCap         string `json:"market_cap"`
	FundingAsk        string `json:"funding_ask"`
}

// profileByUser loads a company profile by owner, writing the error
// response itself on failure.
func (h *CompanyProfileHandler) profileByUser(c *gin.Context, userID uuid.UUID) (*company.Profile, bool) {
	var profile company.Profile
	if err := h.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company profile not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load company profile", "message": err.Error()})
		return nil, false
	}
	return &profile, true
}

// GetMyCompanyProfile returns the caller's company profile
// @Summary Get own company profile
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} company.Profile
// @Failure 404 {object} map[string]string "Company profile not found"
// @Router /company/profile [get]
func (h *CompanyProfileHandler) GetMyCompanyProfile(c *gin.Context) {
	profile, ok := h.profileByUser(c, c.MustGet("userID").(uuid.UUID))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// GetCompanyProfile returns a company profile by its owner's user id
// @Summary Get company profile by user
// @Tags company
// @Produce json
// @Param user_id path string true "Owner user ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} company.Profile
// @Failure 404 {object} map[string]string "Company profile not found"
// @Router /company/profile/{user_id} [get]
func (h *CompanyProfileHandler) GetCompanyProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	profile, ok := h.profileByUser(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// UpsertCompanyProfile creates or updates the caller's company profile
// @Summary Upsert own company profile
// @Tags company
// @Accept json
// @Produce json
// @Param profile body UpsertCompanyProfileRequest true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} company.Profile
// @Router /company/profile [put]
func (h *CompanyProfileHandler) UpsertCompanyProfile(c *gin.Context) {
	var req UpsertCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var profile company.Profile
	err := h.db.First(&profile, "user_id = ?", callerID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load company profile", "message": err.Error()})
		return
	}

	profile.UserID = callerID
	profile.CompanyName = req.CompanyName
	profile.Sectors = req.Sectors
	profile.Stage = req.Stage
	profile.About = req.About
	profile.Address = req.Address
	profile.City = req.City
	profile.State = req.State
	profile.Country = req.Country
	profile.Pincode = req.Pincode
	profile.Website = req.Website
	profile.ContactEmail = req.ContactEmail
	profile.ContactPhone = req.ContactPhone
	profile.PhotoKey = req.PhotoKey
	profile.IncorporationYear = req.IncorporationYear
	profile.EmployeeCount = req.EmployeeCount
	profile.MarketCap = req.MarketCap
	profile.FundingAsk = req.FundingAsk

	if err := h.db.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save company profile", "message": err.Error()})
		return
	}

	h.invalidateCompletion(callerID)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// GetCompanyOverview returns the profile plus every child collection
// @Summary Company overview
// @Description The profile with board, management, verticals, products, decks, financial documents and the subsidiary tree
// @Tags company
// @Produce json
// @Param user_id path string true "Owner user ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Company profile not found"
// @Router /company/overview/{user_id} [get]
func (h *CompanyProfileHandler) GetCompanyOverview(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	profile, ok := h.profileByUser(c, userID)
	if !ok {
		return
	}

	var (
		boardMembers  []company.BoardMember
		keyManagement []company.KeyManagement
		verticals     []company.BusinessVertical
		products      []company.Product
		decks         []company.CorporateDeck
		financials    []company.FinancialDocument
		subsidiaries  []company.SubsidiaryNode
	)
	h.db.Where("profile_id = ?", profile.ID).Order("created_at ASC").Find(&boardMembers)
	h.db.Where("profile_id = ?", profile.ID).Order("created_at ASC").Find(&keyManagement)
	h.db.Where("profile_id = ?", profile.ID).Order("created_at ASC").Find(&verticals)
	h.db.Where("profile_id = ?", profile.ID).Order("created_at ASC").Find(&products)
	h.db.Where("profile_id = ?", profile.ID).Order("created_at DESC").Find(&decks)
	h.db.Where("profile_id = ?", profile.ID).Order("created_at DESC").Find(&financials)
	h.db.Where("profile_id = ?", profile.ID).Order("created_at ASC").Find(&subsidiaries)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"profile":             profile,
			"board_members":       boardMembers,
			"key_management":      keyManagement,
			"business_verticals":  verticals,
			"products":            products,
			"corporate_decks":     decks,
			"financial_documents": financials,
			"subsidiaries":        subsidiaries,
		},
	})
}
