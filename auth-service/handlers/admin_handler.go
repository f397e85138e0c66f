package handlers

import (
	"errors"
	"log"
	"net/http"

	"fundpitch-backend/shared/database/models"
	auth "fundpitch-backend/shared/utils/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler covers the password login path reserved for admins.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// AdminLoginRequest is the email/password login payload.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates an admin account
// @Summary Admin login
// @Description Email and password login, only valid for admin accounts
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} map[string]interface{} "Session token and user"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/admin/login [post]
func (h *AdminHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.db.Where("email = ? AND user_type = ?", req.Email, models.UserTypeAdmin).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user", "message": err.Error()})
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, expiresAt, err := auth.GenerateJWT(user.ID, user.Email, user.Phone, string(user.UserType))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate session token", "message": err.Error()})
		return
	}

	log.Printf("🔐 Admin %s logged in", user.Email)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}
