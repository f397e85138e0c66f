package handlers

import (
	"errors"
	"net/http"

	"fundpitch-backend/shared/database/models/engagement"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpressionHandler manages investment offers posted to companies.
type ExpressionHandler struct {
	db *gorm.DB
}

// NewExpressionHandler creates a new expression handler
func NewExpressionHandler(db *gorm.DB) *ExpressionHandler {
	return &ExpressionHandler{db: db}
}

// CreateExpressionRequest is the offer payload.
type CreateExpressionRequest struct {
	CompanyUserID string `json:"company_user_id" binding:"required"`
	OfferType     string `json:"offer_type" binding:"required"`
	Message       string `json:"message"`
}

// CreateExpression posts an offer to a company
// @Summary Create expression
// @Description Post an investment/collaboration offer to a company
// @Tags expressions
// @Accept json
// @Produce json
// @Param expression body CreateExpressionRequest true "Offer details"
// @Security BearerAuth
// @Success 201 {object} engagement.Expression
// @Failure 400 {object} map[string]string "Validation error"
// @Router /expressions [post]
func (h *ExpressionHandler) CreateExpression(c *gin.Context) {
	var req CreateExpressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyUserID, err := uuid.Parse(req.CompanyUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company user ID format"})
		return
	}

	expr := engagement.Expression{
		UserID:        c.MustGet("userID").(uuid.UUID),
		CompanyUserID: companyUserID,
		OfferType:     req.OfferType,
		Message:       req.Message,
	}

	if err := h.db.Create(&expr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expression", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    expr,
	})
}

// GetCompanyExpressions lists offers a company received
// @Summary List company expressions
// @Description Offers posted to the caller's company, most recent first
// @Tags expressions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /expressions [get]
func (h *ExpressionHandler) GetCompanyExpressions(c *gin.Context) {
	callerID := c.MustGet("userID").(uuid.UUID)

	var expressions []engagement.Expression
	err := h.db.Where("company_user_id = ?", callerID).
		Order("created_at DESC").
		Find(&expressions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load expressions", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    expressions,
	})
}

// ApproveExpression flips the approval flag on a received offer
// @Summary Approve expression
// @Tags expressions
// @Produce json
// @Param id path string true "Expression ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} engagement.Expression
// @Failure 404 {object} map[string]string "Expression not found"
// @Router /expressions/{id}/approve [put]
func (h *ExpressionHandler) ApproveExpression(c *gin.Context) {
	exprID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expression ID format"})
		return
	}

	callerID := c.MustGet("userID").(uuid.UUID)

	var expr engagement.Expression
	if err := h.db.First(&expr, "id = ?", exprID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expression not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up expression", "message": err.Error()})
		return
	}

	if expr.CompanyUserID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the receiving company can approve an expression"})
		return
	}

	if err := h.db.Model(&expr).Update("is_approved", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve expression", "message": err.Error()})
		return
	}
	expr.IsApproved = true

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    expr,
	})
}
