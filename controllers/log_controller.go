package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chartmann1590/NutriCoach-AI/config"
	"github.com/chartmann1590/NutriCoach-AI/models"
	"github.com/chartmann1590/NutriCoach-AI/services"

	"github.com/gin-gonic/gin"
)

type createFoodLogRequest struct {
	UserID       uint                        `json:"user_id"`
	PhotoID      *uint                       `json:"photo_id"`
	Name         string                      `json:"name" binding:"required"`
	PortionGrams float64                     `json:"portion_grams"`
	Nutrition    *services.NutritionOverride `json:"nutrition"`
}

// POST /logs — create a food log entry. Nutrition is resolved from the
// search/estimate chain and any user-supplied values take priority over
// both.
func CreateFoodLog(c *gin.Context) {
	var req createFoodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.PortionGrams <= 0 {
		req.PortionGrams = 100
	}

	search := services.NewNutritionSearchService()
	estimate := services.BasicEstimate(req.Name, req.PortionGrams)
	resolved := search.GetNutritionEstimate(c.Request.Context(), req.Name, req.PortionGrams)

	merged := services.MergeNutritionSources(&estimate, &resolved, req.Nutrition)

	entry := models.FoodLog{
		UserID:       req.UserID,
		PhotoID:      req.PhotoID,
		Name:         req.Name,
		PortionGrams: req.PortionGrams,
		Calories:     merged.Calories,
		Protein:      merged.ProteinG,
		Carbs:        merged.CarbsG,
		Fat:          merged.FatG,
		Fiber:        merged.FiberG,
		Sugar:        merged.SugarG,
		Sodium:       merged.SodiumMg,
		Source:       merged.Source,
		AteAt:        time.Now().UTC(),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save food log"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GET /logs?user_id=1
func ListFoodLogs(c *gin.Context) {
	q := config.DB.Order("ate_at desc")
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			q = q.Where("user_id = ?", uint(id))
		}
	}

	var logs []models.FoodLog
	if err := q.Limit(100).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list food logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// DELETE /logs/:id
func DeleteFoodLog(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	var entry models.FoodLog
	if err := config.DB.First(&entry, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food log not found"})
		return
	}
	if err := config.DB.Delete(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete food log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food log deleted successfully"})
}
