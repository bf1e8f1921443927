package routes

import (
	"github.com/chartmann1590/NutriCoach-AI/controllers"
	"github.com/chartmann1590/NutriCoach-AI/middlewares"
	"github.com/chartmann1590/NutriCoach-AI/utils"

	"github.com/gin-gonic/gin"
)

func SetupRouter(log utils.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))

	api := r.Group("/api")
	{
		api.POST("/photo/upload", controllers.UploadPhoto)
		api.GET("/photo/:id/analysis", controllers.GetPhotoAnalysis)

		api.GET("/food/search", controllers.SearchFoods)
		api.GET("/food/barcode/:code", controllers.LookupBarcode)
		api.POST("/food/nutrition", controllers.EstimateNutrition)

		api.POST("/logs", controllers.CreateFoodLog)
		api.GET("/logs", controllers.ListFoodLogs)
		api.DELETE("/logs/:id", controllers.DeleteFoodLog)

		api.GET("/models", controllers.ListModels)
		api.GET("/models/health", controllers.ModelHealth)
		api.GET("/vision/labels", controllers.VisionLabels)
	}

	return r
}
