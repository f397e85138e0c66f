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

// CompanyChildrenHandler manages the collections hanging off a company
// profile: board members, key management, verticals, products, decks
// and financial documents.
type CompanyChildrenHandler struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

// NewCompanyChildrenHandler creates a new handler for company child collections
func NewCompanyChildrenHandler(db *gorm.DB, cm *cache.CacheManager) *CompanyChildrenHandler {
	return &CompanyChildrenHandler{db: db, cache: cm}
}

// callerProfile resolves the caller's own company profile. Child rows
// can only ever be attached to the caller's profile.
func (h *CompanyChildrenHandler) callerProfile(c *gin.Context) (*company.Profile, bool) {
	callerID := c.MustGet("userID").(uuid.UUID)

	var profile company.Profile
	if err := h.db.First(&profile, "user_id = ?", callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company profile not found", "message": "Create your company profile first"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load company profile", "message": err.Error()})
		return nil, false
	}
	return &profile, true
}

func (h *CompanyChildrenHandler) invalidateCompletion(c *gin.Context) {
	if h.cache != nil {
		h.cache.InvalidateCompletion(c.MustGet("userID").(uuid.UUID).String())
	}
}

func parseChildID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// PersonRequest covers board members and key management entries.
type PersonRequest struct {
	Name        string `json:"name" binding:"required"`
	Designation string `json:"designation"`
	About       string `json:"about"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	PhotoKey    string `json:"photo_key"`
}

// NamedItemRequest covers verticals and products.
type NamedItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PhotoKey    string `json:"photo_key"`
}

// DocumentRequest covers corporate decks and financial documents.
type DocumentRequest struct {
	Title     string `json:"title"`
	Year      string `json:"year"`
	ObjectKey string `json:"object_key" binding:"required"`
	FileName  string `json:"file_name"`
}

// AddBoardMember adds a board entry to the caller's company
// @Summary Add board member
// @Tags company
// @Accept json
// @Produce json
// @Param member body PersonRequest true "Board member"
// @Security BearerAuth
// @Success 201 {object} company.BoardMember
// @Router /company/board-members [post]
func (h *CompanyChildrenHandler) AddBoardMember(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	member := company.BoardMember{
		ProfileID:   profile.ID,
		Name:        req.Name,
		Designation: req.Designation,
		About:       req.About,
		PhotoKey:    req.PhotoKey,
	}
	if err := h.db.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add board member", "message": err.Error()})
		return
	}
	h.invalidateCompletion(c)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": member})
}

// UpdateBoardMember updates a board entry
// @Summary Update board member
// @Tags company
// @Accept json
// @Produce json
// @Param id path string true "Board member ID" format(uuid)
// @Param member body PersonRequest true "Board member"
// @Security BearerAuth
// @Success 200 {object} company.BoardMember
// @Failure 404 {object} map[string]string "Not found"
// @Router /company/board-members/{id} [put]
func (h *CompanyChildrenHandler) UpdateBoardMember(c *gin.Context) {
	id, ok := parseChildID(c)
	if !ok {
		return
	}
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	var member company.BoardMember
	if err := h.db.First(&member, "id = ? AND profile_id = ?", id, profile.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board member not found"})
		return
	}

	member.Name = req.Name
	member.Designation = req.Designation
	member.About = req.About
	member.PhotoKey = req.PhotoKey
	if err := h.db.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board member", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": member})
}

// DeleteBoardMember removes a board entry
// @Summary Delete board member
// @Tags company
// @Produce json
// @Param id path string true "Board member ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /company/board-members/{id} [delete]
func (h *CompanyChildrenHandler) DeleteBoardMember(c *gin.Context) {
	h.deleteChild(c, &company.BoardMember{}, "Board member")
}

// AddKeyManagement adds a key management entry
// @Summary Add key management entry
// @Tags company
// @Accept json
// @Produce json
// @Param member body PersonRequest true "Key management entry"
// @Security BearerAuth
// @Success 201 {object} company.KeyManagement
// @Router /company/key-management [post]
func (h *CompanyChildrenHandler) AddKeyManagement(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	entry := company.KeyManagement{
		ProfileID:   profile.ID,
		Name:        req.Name,
		Designation: req.Designation,
		Email:       req.Email,
		Phone:       req.Phone,
		PhotoKey:    req.PhotoKey,
	}
	if err := h.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add key management entry", "message": err.Error()})
		return
	}
	h.invalidateCompletion(c)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": entry})
}

// UpdateKeyManagement updates a key management entry
// @Summary Update key management entry
// @Tags company
// @Accept json
// @Produce json
// @Param id path string true "Entry ID" format(uuid)
// @Param member body PersonRequest true "Key management entry"
// @Security BearerAuth
// @Success 200 {object} company.KeyManagement
// @Failure 404 {object} map[string]string "Not found"
// @Router /company/key-management/{id} [put]
func (h *CompanyChildrenHandler) UpdateKeyManagement(c *gin.Context) {
	id, ok := parseChildID(c)
	if !ok {
		return
	}
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	var entry company.KeyManagement
	if err := h.db.First(&entry, "id = ? AND profile_id = ?", id, profile.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key management entry not found"})
		return
	}

	entry.Name = req.Name
	entry.Designation = req.Designation
	entry.Email = req.Email
	entry.Phone = req.Phone
	entry.PhotoKey = req.PhotoKey
	if err := h.db.Save(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update key management entry", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}

// DeleteKeyManagement removes a key management entry
// @Summary Delete key management entry
// @Tags company
// @Produce json
// @Param id path string true "Entry ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /company/key-management/{id} [delete]
func (h *CompanyChildrenHandler) DeleteKeyManagement(c *gin.Context) {
	h.deleteChild(c, &company.KeyManagement{}, "Key management entry")
}

// AddBusinessVertical adds a business vertical
// @Summary Add business vertical
// @Tags company
// @Accept json
// @Produce json
// @Param vertical body NamedItemRequest true "Business vertical"
// @Security BearerAuth
// @Success 201 {object} company.BusinessVertical
// @Router /company/verticals [post]
func (h *CompanyChildrenHandler) AddBusinessVertical(c *gin.Context) {
	var req NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	vertical := company.BusinessVertical{
		ProfileID:   profile.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.db.Create(&vertical).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add business vertical", "message": err.Error()})
		return
	}
	h.invalidateCompletion(c)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": vertical})
}

// DeleteBusinessVertical removes a business vertical
// @Summary Delete business vertical
// @Tags company
// @Produce json
// @Param id path string true "Vertical ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /company/verticals/{id} [delete]
func (h *CompanyChildrenHandler) DeleteBusinessVertical(c *gin.Context) {
	h.deleteChild(c, &company.BusinessVertical{}, "Business vertical")
}

// AddProduct adds a product entry
// @Summary Add product
// @Tags company
// @Accept json
// @Produce json
// @Param product body NamedItemRequest true "Product"
// @Security BearerAuth
// @Success 201 {object} company.Product
// @Router /company/products [post]
func (h *CompanyChildrenHandler) AddProduct(c *gin.Context) {
	var req NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	product := company.Product{
		ProfileID:   profile.ID,
		Name:        req.Name,
		Description: req.Description,
		PhotoKey:    req.PhotoKey,
	}
	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product", "message": err.Error()})
		return
	}
	h.invalidateCompletion(c)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// DeleteProduct removes a product entry
// @Summary Delete product
// @Tags company
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /company/products/{id} [delete]
func (h *CompanyChildrenHandler) DeleteProduct(c *gin.Context) {
	h.deleteChild(c, &company.Product{}, "Product")
}

// AddCorporateDeck registers an uploaded deck
// @Summary Add corporate deck
// @Tags company
// @Accept json
// @Produce json
// @Param deck body DocumentRequest true "Deck reference"
// @Security BearerAuth
// @Success 201 {object} company.CorporateDeck
// @Router /company/decks [post]
func (h *CompanyChildrenHandler) AddCorporateDeck(c *gin.Context) {
	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	deck := company.CorporateDeck{
		ProfileID: profile.ID,
		Title:     req.Title,
		ObjectKey: req.ObjectKey,
		FileName:  req.FileName,
	}
	if err := h.db.Create(&deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add corporate deck", "message": err.Error()})
		return
	}
	h.invalidateCompletion(c)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": deck})
}

// DeleteCorporateDeck removes a deck reference
// @Summary Delete corporate deck
// @Tags company
// @Produce json
// @Param id path string true "Deck ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /company/decks/{id} [delete]
func (h *CompanyChildrenHandler) DeleteCorporateDeck(c *gin.Context) {
	h.deleteChild(c, &company.CorporateDeck{}, "Corporate deck")
}

// AddFinancialDocument registers an uploaded financial document
// @Summary Add financial document
// @Tags company
// @Accept json
// @Produce json
// @Param document body DocumentRequest true "Document reference"
// @Security BearerAuth
// @Success 201 {object} company.FinancialDocument
// @Router /company/financial-documents [post]
func (h *CompanyChildrenHandler) AddFinancialDocument(c *gin.Context) {
	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	doc := company.FinancialDocument{
		ProfileID: profile.ID,
		Title:     req.Title,
		Year:      req.Year,
		ObjectKey: req.ObjectKey,
		FileName:  req.FileName,
	}
	if err := h.db.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add financial document", "message": err.Error()})
		return
	}
	h.invalidateCompletion(c)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": doc})
}

// DeleteFinancialDocument removes a financial document reference
// @Summary Delete financial document
// @Tags company
// @Produce json
// @Param id path string true "Document ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /company/financial-documents/{id} [delete]
func (h *CompanyChildrenHandler) DeleteFinancialDocument(c *gin.Context) {
	h.deleteChild(c, &company.FinancialDocument{}, "Financial document")
}

// deleteChild removes a child row scoped to the caller's profile.
func (h *CompanyChildrenHandler) deleteChild(c *gin.Context, model interface{}, label string) {
	id, ok := parseChildID(c)
	if !ok {
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	result := h.db.Where("id = ? AND profile_id = ?", id, profile.ID).Delete(model)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + label, "message": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": label + " not found"})
		return
	}

	h.invalidateCompletion(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": label + " deleted successfully"})
}
