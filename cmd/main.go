package main

import (
	"github.com/chartmann1590/NutriCoach-AI/config"
	"github.com/chartmann1590/NutriCoach-AI/controllers"
	"github.com/chartmann1590/NutriCoach-AI/routes"
	"github.com/chartmann1590/NutriCoach-AI/utils"
)

func main() {
	log := utils.NewLogger(
		config.Getenv("LOG_LEVEL", "info"),
		config.Getenv("LOG_FORMAT", "console"),
	)

	config.InitDB()
	controllers.Logger = log

	r := routes.SetupRouter(log)
	r.Run(":" + config.Getenv("PORT", "8080"))
}
