package handlers

import (
	"errors"
	"net/http"

	"fundpitch-backend/shared/database/models/company"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubsidiaryHandler manages the org-chart tree a founder draws for
// their group structure.
type SubsidiaryHandler struct {
	db *gorm.DB
}

// NewSubsidiaryHandler creates a new subsidiary handler
func NewSubsidiaryHandler(db *gorm.DB) *SubsidiaryHandler {
	return &SubsidiaryHandler{db: db}
}

func (h *SubsidiaryHandler) callerProfile(c *gin.Context) (*company.Profile, bool) {
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

// AddNodeRequest creates a node, optionally attached under a parent.
type AddNodeRequest struct {
	Label     string  `json:"label" binding:"required"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	ParentID  string  `json:"parent_id"`
}

// MoveNodeRequest repositions or re-parents a node.
type MoveNodeRequest struct {
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	ParentID  string  `json:"parent_id"`
}

// GetSubsidiaries lists the caller's org-chart nodes
// @Summary List subsidiary nodes
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /company/subsidiaries [get]
func (h *SubsidiaryHandler) GetSubsidiaries(c *gin.Context) {
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	var nodes []company.SubsidiaryNode
	if err := h.db.Where("profile_id = ?", profile.ID).Order("created_at ASC").Find(&nodes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subsidiaries", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": nodes})
}

// AddSubsidiary adds an org-chart node
// @Summary Add subsidiary node
// @Tags company
// @Accept json
// @Produce json
// @Param node body AddNodeRequest true "Node details"
// @Security BearerAuth
// @Success 201 {object} company.SubsidiaryNode
// @Failure 400 {object} map[string]string "Invalid parent"
// @Router /company/subsidiaries [post]
func (h *SubsidiaryHandler) AddSubsidiary(c *gin.Context) {
	var req AddNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	node := company.SubsidiaryNode{
		ProfileID: profile.ID,
		Label:     req.Label,
		PositionX: req.PositionX,
		PositionY: req.PositionY,
	}

	if req.ParentID != "" {
		parentID, ok := h.resolveParent(c, profile.ID, req.ParentID)
		if !ok {
			return
		}
		node.ParentID = &parentID
	}

	if err := h.db.Create(&node).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add subsidiary node", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": node})
}

// MoveSubsidiary repositions or re-parents an org-chart node
// @Summary Move subsidiary node
// @Tags company
// @Accept json
// @Produce json
// @Param id path string true "Node ID" format(uuid)
// @Param node body MoveNodeRequest true "New position and parent"
// @Security BearerAuth
// @Success 200 {object} company.SubsidiaryNode
// @Failure 404 {object} map[string]string "Node not found"
// @Router /company/subsidiaries/{id} [put]
func (h *SubsidiaryHandler) MoveSubsidiary(c *gin.Context) {
	nodeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node ID format"})
		return
	}

	var req MoveNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	var node company.SubsidiaryNode
	if err := h.db.First(&node, "id = ? AND profile_id = ?", nodeID, profile.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subsidiary node not found"})
		return
	}

	node.PositionX = req.PositionX
	node.PositionY = req.PositionY
	node.ParentID = nil
	if req.ParentID != "" {
		parentID, ok := h.resolveParent(c, profile.ID, req.ParentID)
		if !ok {
			return
		}
		if parentID == node.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A node cannot be its own parent"})
			return
		}
		node.ParentID = &parentID
	}

	if err := h.db.Save(&node).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move subsidiary node", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": node})
}

// DeleteSubsidiary removes a node; its children move up to the root
// @Summary Delete subsidiary node
// @Tags company
// @Produce json
// @Param id path string true "Node ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Node not found"
// @Router /company/subsidiaries/{id} [delete]
func (h *SubsidiaryHandler) DeleteSubsidiary(c *gin.Context) {
	nodeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node ID format"})
		return
	}
	profile, ok := h.callerProfile(c)
	if !ok {
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND profile_id = ?", nodeID, profile.ID).Delete(&company.SubsidiaryNode{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Orphaned children become root nodes instead of dangling refs
		return tx.Model(&company.SubsidiaryNode{}).
			Where("profile_id = ? AND parent_id = ?", profile.ID, nodeID).
			Update("parent_id", nil).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subsidiary node not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subsidiary node", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subsidiary node deleted successfully"})
}

func (h *SubsidiaryHandler) resolveParent(c *gin.Context, profileID uuid.UUID, raw string) (uuid.UUID, bool) {
	parentID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent ID format"})
		return uuid.Nil, false
	}

	var count int64
	h.db.Model(&company.SubsidiaryNode{}).
		Where("id = ? AND profile_id = ?", parentID, profileID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent node not found"})
		return uuid.Nil, false
	}
	return parentID, true
}
