package controllers

import (
	"net/http"

	"github.com/chartmann1590/NutriCoach-AI/services"

	"github.com/gin-gonic/gin"
)

// GET /models — models available on the configured Ollama endpoint.
func ListModels(c *gin.Context) {
	ollama := services.NewOllamaService()

	models, err := ollama.ListModels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

// GET /models/health
func ModelHealth(c *gin.Context) {
	ollama := services.NewOllamaService()
	c.JSON(http.StatusOK, gin.H{
		"connected": ollama.TestConnection(c.Request.Context()),
	})
}

// GET /vision/labels — class labels known to the local fallback classifier.
func VisionLabels(c *gin.Context) {
	classifier := services.NewVisionClassifier()
	c.JSON(http.StatusOK, gin.H{
		"available": classifier.IsAvailable(),
		"labels":    classifier.Labels(),
	})
}
