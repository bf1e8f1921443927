package models

import (
	"time"

	"gorm.io/gorm"
)

// Each FoodLog stores the nutrition snapshot for one eaten item
type FoodLog struct {
	gorm.Model
	UserID  uint
	PhotoID *uint // set when the entry came from a photo analysis
	Photo   *Photo

	Name         string  `gorm:"not null"`
	PortionGrams float64 // e.g. 150
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
	Fiber        float64
	Sugar        float64
	Sodium       float64 // mg
	Source       string  // nutrition source label, e.g. product title or "Generic estimate"
	AteAt        time.Time
}
