package models

import "gorm.io/gorm"

// Per-user model settings; zero values fall back to the config defaults.
type Settings struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex"`
	OllamaURL    string `gorm:"type:varchar(255)"`
	VisionModel  string `gorm:"type:varchar(255)"`
	ChatModel    string `gorm:"type:varchar(255)"`
	SystemPrompt string `gorm:"type:text"`
}
