package handlers

import (
	"net/http"

	"fundpitch-backend/media-service/services"

	"github.com/gin-gonic/gin"
)

// MediaHandler exposes the presigned upload/download/delete endpoints.
type MediaHandler struct {
	minio *services.MinIOService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(minio *services.MinIOService) *MediaHandler {
	return &MediaHandler{minio: minio}
}

// PresignUploadRequest names the folder the object should land in.
type PresignUploadRequest struct {
	Folder string `json:"folder" binding:"required"`
}

// PresignUpload issues a presigned PUT URL
// @Summary Presign upload
// @Description Returns a presigned PUT URL and the object key it will create
// @Tags media
// @Accept json
// @Produce json
// @Param request body PresignUploadRequest true "Target folder"
// @Security BearerAuth
// @Success 200 {object} map[string]string "upload_url and object_key"
// @Failure 400 {object} map[string]string "Invalid folder name"
// @Router /media/presign-upload [post]
func (h *MediaHandler) PresignUpload(c *gin.Context) {
	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !services.ValidFolderName(req.Folder) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder name"})
		return
	}

	key, uploadURL, err := h.minio.PresignUpload(c.Request.Context(), req.Folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to presign upload", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"upload_url": uploadURL,
		"object_key": key,
	})
}

// PresignDownload issues a presigned GET URL for an object
// @Summary Presign download
// @Tags media
// @Produce json
// @Param key query string true "Object key"
// @Security BearerAuth
// @Success 200 {object} map[string]string "download_url"
// @Failure 404 {object} map[string]string "Object not found"
// @Router /media/presign-download [get]
func (h *MediaHandler) PresignDownload(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Object key is required"})
		return
	}

	exists, err := h.minio.ObjectExists(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check object", "message": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
		return
	}

	downloadURL, err := h.minio.PresignDownload(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to presign download", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"download_url": downloadURL,
	})
}

// DeleteObject removes an object by key
// @Summary Delete object
// @Tags media
// @Produce json
// @Param key query string true "Object key"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /media/object [delete]
func (h *MediaHandler) DeleteObject(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Object key is required"})
		return
	}

	if err := h.minio.RemoveObject(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete object", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Object deleted successfully",
	})
}
