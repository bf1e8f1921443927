package controllers

import (
	"net/http"

	"github.com/chartmann1590/NutriCoach-AI/services"

	"github.com/gin-gonic/gin"
)

// GET /food/search?q=apple
func SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	search := services.NewNutritionSearchService()
	results := search.SearchFood(c.Request.Context(), query)
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

// GET /food/barcode/:code
func LookupBarcode(c *gin.Context) {
	code := c.Param("code")
	search := services.NewNutritionSearchService()

	result := search.SearchBarcode(c.Request.Context(), code)
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /food/nutrition  { "name": "banana", "grams": 120 }
func EstimateNutrition(c *gin.Context) {
	var req struct {
		Name  string  `json:"name" binding:"required"`
		Grams float64 `json:"grams"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Grams <= 0 {
		req.Grams = 100
	}

	search := services.NewNutritionSearchService()
	nutrition := search.GetNutritionEstimate(c.Request.Context(), req.Name, req.Grams)
	c.JSON(http.StatusOK, gin.H{
		"name":      req.Name,
		"grams":     req.Grams,
		"nutrition": nutrition,
	})
}
