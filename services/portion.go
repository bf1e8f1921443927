package services

import (
	"regexp"
	"strconv"
	"strings"
)

var portionNumberRe = regexp.MustCompile(`\d+\.?\d*`)

// unitGrams maps a unit substring to grams per unit. Checked in order so
// that e.g. "kg" wins over the bare "g" test.
var unitGrams = []struct {
	substrings []string
	grams      float64
}{
	{[]string{"kg"}, 1000},
	{[]string{"lb", "pound"}, 453.592},
	{[]string{"oz"}, 28.35},
	{[]string{"cup"}, 240},
	{[]string{"tbsp", "tablespoon"}, 15},
	{[]string{"tsp", "teaspoon"}, 5},
	{[]string{"slice"}, 30},
	{[]string{"piece"}, 50},
	{[]string{"g", "gram"}, 1},
}

// sizeGrams covers number-free portion descriptions like "medium".
var sizeGrams = []struct {
	word  string
	grams float64
}{
	{"small", 50},
	{"medium", 100},
	{"large", 200},
	{"handful", 30},
}

// ParsePortion converts free-text portion descriptions into grams.
// Text with a number but no recognizable unit is assumed to already be
// grams; text with neither yields the 100g default.
func ParsePortion(portionText string) float64 {
	if portionText == "" {
		return 100
	}

	text := strings.ToLower(strings.TrimSpace(portionText))

	numStr := portionNumberRe.FindString(text)
	if numStr == "" {
		for _, s := range sizeGrams {
			if strings.Contains(text, s.word) {
				return s.grams
			}
		}
		return 100
	}

	amount, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 100
	}

	for _, u := range unitGrams {
		for _, sub := range u.substrings {
			if strings.Contains(text, sub) {
				return amount * u.grams
			}
		}
	}

	// No unit matched: assume grams.
	return amount
}
