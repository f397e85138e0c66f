package handlers

import (
	"errors"
	"net/http"

	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/utils/query"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserHandler serves the admin-facing user directory.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// UpdateUserRequest represents request body for updating a user
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	UserType string `json:"user_type"`
}

// GetUsers retrieves all users with pagination and filtering
// @Summary Get all users
// @Description Get all users with pagination, filtering, sorting and search
// @Tags users
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search term across email and phone"
// @Param filters[user_type] query string false "Filter by user type"
// @Param sort[field] query string false "Sort field (email, phone, user_type, created_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	params := query.ParseListParams(c)

	allowedFilters := map[string]string{
		"user_type": "user_type",
	}
	allowedSortFields := map[string]string{
		"email":      "email",
		"phone":      "phone",
		"user_type":  "user_type",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	searchFields := []string{"email", "phone"}

	baseQuery := h.db.Model(&models.User{})
	baseQuery = query.ApplyFilters(baseQuery, params.Filters, allowedFilters)
	baseQuery = query.ApplySearch(baseQuery, params.Search, searchFields)

	var total int64
	baseQuery.Count(&total)

	finalQuery := query.ApplySort(baseQuery, params.Sort, allowedSortFields)
	finalQuery = query.ApplyPagination(finalQuery, params.Page, params.Limit)

	var users []models.User
	if err := finalQuery.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve users",
			"message": err.Error(),
		})
		return
	}

	pagination := query.BuildPaginationResponse(params.Page, params.Limit, total)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":      users,
			"pagination": pagination,
		},
	})
}

// GetUser retrieves a single user by ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid user ID format",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "User not found",
				"message": "User with the given ID does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve user",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpdateUser updates an existing user
// @Summary Update a user
// @Description Admin update of a user's contact details or type
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Param user body UpdateUserRequest true "Updated user information"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Email or phone already exists"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid user ID format",
			"message": err.Error(),
		})
		return
	}

	var request UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "User not found",
				"message": "User with the given ID does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve user",
			"message": err.Error(),
		})
		return
	}

	if request.UserType != "" && !models.ValidUserType(request.UserType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user type"})
		return
	}

	// Contact detail changes must not collide with another account
	if (request.Email != "" && request.Email != user.Email) ||
		(request.Phone != "" && request.Phone != user.Phone) {
		var count int64
		h.db.Model(&models.User{}).
			Where("id != ? AND ((email != '' AND email = ?) OR (phone != '' AND phone = ?))",
				userID, request.Email, request.Phone).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or Phone Number already exists"})
			return
		}
	}

	updates := map[string]interface{}{}
	if request.Email != "" {
		updates["email"] = request.Email
	}
	if request.Phone != "" {
		updates["phone"] = request.Phone
	}
	if request.UserType != "" {
		updates["user_type"] = request.UserType
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to update user",
				"message": err.Error(),
			})
			return
		}
	}

	h.db.First(&user, "id = ?", userID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

// DeleteUser removes a user account
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid user ID format",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "User not found",
				"message": "User with the given ID does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve user",
			"message": err.Error(),
		})
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete user",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}
