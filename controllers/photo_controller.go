package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/chartmann1590/NutriCoach-AI/config"
	"github.com/chartmann1590/NutriCoach-AI/models"
	"github.com/chartmann1590/NutriCoach-AI/services"
	"github.com/chartmann1590/NutriCoach-AI/utils"

	"github.com/gin-gonic/gin"
)

// Logger is installed by main; handlers and the services they build
// share it.
var Logger utils.Logger = utils.NewNopLogger()

// POST /photo/upload  (multipart field "photo", optional "user_id")
func UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo file provided"})
		return
	}
	if !utils.AllowedImageFile(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only images allowed."})
		return
	}

	userID := uint(0)
	if v := c.PostForm("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			userID = uint(id)
		}
	}

	dir := filepath.Join(config.UploadFolder(), "food")
	storedPath, err := utils.SaveUploadedImage(file, dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	photo := models.Photo{UserID: userID, Filepath: storedPath}
	if err := config.DB.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo record"})
		return
	}

	analysis := services.NewAnalysisServiceForUser(config.DB, userID, Logger)
	candidates, visionItems, meta := analysis.AnalyzePhoto(c.Request.Context(), storedPath)

	if err := photo.SetAnalysis(gin.H{
		"candidates":   candidates,
		"vision_items": visionItems,
		"meta":         meta,
	}); err == nil {
		config.DB.Save(&photo)
	}

	if len(candidates) == 0 {
		Logger.Warn("photo analysis returned no candidates", map[string]interface{}{
			"photo_id": photo.ID,
			"warning":  meta.Warning,
			"errors":   meta.Errors,
		})
		c.JSON(http.StatusBadGateway, gin.H{
			"photo_id": photo.ID,
			"error":    "Photo analysis failed",
			"warning":  meta.Warning,
			"errors":   meta.Errors,
		})
		return
	}

	body := gin.H{
		"photo_id":   photo.ID,
		"filename":   filepath.Base(storedPath),
		"candidates": candidates,
	}
	if meta.Source != "" {
		body["analysis_source"] = meta.Source
	}
	if meta.Warning != "" {
		body["warning"] = meta.Warning
	}
	if len(meta.Errors) > 0 {
		body["errors"] = meta.Errors
	}
	c.JSON(http.StatusCreated, body)
}

// GET /photo/:id/analysis
func GetPhotoAnalysis(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	var photo models.Photo
	if err := config.DB.First(&photo, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photo_id": photo.ID,
		"analysis": photo.GetAnalysis(),
	})
}
