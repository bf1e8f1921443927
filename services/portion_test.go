package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePortion(t *testing.T) {
	tests := []struct {
		name    string
		portion string
		want    float64
	}{
		{"plain grams", "150g", 150},
		{"grams word", "150 grams", 150},
		{"kilograms", "1.5kg", 1500},
		{"pounds", "2 lbs", 907.184},
		{"ounces", "4 oz", 113.4},
		{"cup", "1 cup", 240},
		{"two cups", "2 cups", 480},
		{"tablespoon", "3 tbsp", 45},
		{"teaspoon", "2 tsp", 10},
		{"slice", "2 slices", 60},
		{"piece", "1 piece", 50},
		{"bare number assumed grams", "75", 75},
		{"unknown unit assumed grams", "80 units", 80},
		{"no number defaults", "bogus text", 100},
		{"empty defaults", "", 100},
		{"small", "small", 50},
		{"medium", "medium", 100},
		{"large", "large", 200},
		{"handful", "a handful", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePortion(tt.portion), 0.001)
		})
	}
}
