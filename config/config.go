package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/chartmann1590/NutriCoach-AI/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file found, using process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Photo{},
		&models.FoodLog{},
		&models.Settings{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Getenv returns the value of key or fallback when unset/empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func OllamaURL() string {
	return Getenv("OLLAMA_URL", "http://localhost:11434")
}

func DefaultVisionModel() string {
	return Getenv("DEFAULT_VISION_MODEL", "llava")
}

func DefaultChatModel() string {
	return Getenv("DEFAULT_CHAT_MODEL", "llama2")
}

func OpenFoodFactsURL() string {
	return Getenv("OPENFOODFACTS_API_URL", "https://world.openfoodfacts.org")
}

func WikipediaURL() string {
	return Getenv("WIKIPEDIA_API_URL", "https://en.wikipedia.org")
}

func UploadFolder() string {
	return Getenv("UPLOAD_FOLDER", "static/uploads")
}

// VisionTimeout bounds a single vision model request. Vision models can
// take a while on CPU-only hosts, so the default is deliberately generous.
func VisionTimeout() time.Duration {
	secs, err := strconv.Atoi(Getenv("VISION_TIMEOUT_SECONDS", "120"))
	if err != nil || secs <= 0 {
		secs = 120
	}
	return time.Duration(secs) * time.Second
}
