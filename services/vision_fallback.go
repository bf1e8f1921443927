package services

import (
	"math/rand"
	"os"
	"strings"
)

// VisionClassifier is the deterministic stand-in used when no vision
// model is configured or reachable. It emits generic high-likelihood
// items so downstream stages always have input; it performs no real
// inference.
type VisionClassifier struct {
	classes []string
	rng     *rand.Rand
}

func NewVisionClassifier() *VisionClassifier {
	return &VisionClassifier{
		classes: foodClasses,
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// NewVisionClassifierWithSeed pins the portion choice for tests.
func NewVisionClassifierWithSeed(seed int64) *VisionClassifier {
	return &VisionClassifier{
		classes: foodClasses,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

var fallbackPortions = []string{"50g", "100g", "150g", "200g", "1 cup", "1 slice", "1 piece"}

// ClassifyImage returns the mock item set. The image is read only to
// confirm the path points at something; an unreadable file still yields
// the mock results, matching the "always return something" contract.
func (v *VisionClassifier) ClassifyImage(imagePath string) []RawVisionItem {
	if imagePath != "" {
		if _, err := os.Stat(imagePath); err != nil {
			return v.mockClassification()
		}
	}
	return v.mockClassification()
}

func (v *VisionClassifier) mockClassification() []RawVisionItem {
	return []RawVisionItem{
		{Name: "Grilled Chicken", PortionText: v.randomPortion(), Confidence: 0.75},
		{Name: "Mixed Vegetables", PortionText: v.randomPortion(), Confidence: 0.65},
		{Name: "Rice", PortionText: v.randomPortion(), Confidence: 0.60},
	}
}

func (v *VisionClassifier) randomPortion() string {
	return fallbackPortions[v.rng.Intn(len(fallbackPortions))]
}

// Labels returns the human-readable class list.
func (v *VisionClassifier) Labels() []string {
	out := make([]string, len(v.classes))
	for i, c := range v.classes {
		words := strings.Split(c, "_")
		for j, w := range words {
			if w != "" {
				words[j] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
		out[i] = strings.Join(words, " ")
	}
	return out
}

func (v *VisionClassifier) IsAvailable() bool {
	return true
}

// foodClasses is the Food-101 label set, initialized once and never
// mutated.
var foodClasses = []string{
	"apple_pie", "baby_back_ribs", "baklava", "beef_carpaccio", "beef_tartare",
	"beet_salad", "beignets", "bibimbap", "bread_pudding", "breakfast_burrito",
	"bruschetta", "caesar_salad", "cannoli", "caprese_salad", "carrot_cake",
	"ceviche", "cheese_plate", "cheesecake", "chicken_curry", "chicken_quesadilla",
	"chicken_wings", "chocolate_cake", "chocolate_mousse", "churros", "clam_chowder",
	"club_sandwich", "crab_cakes", "creme_brulee", "croque_madame", "cup_cakes",
	"deviled_eggs", "donuts", "dumplings", "edamame", "eggs_benedict",
	"escargots", "falafel", "filet_mignon", "fish_and_chips", "foie_gras",
	"french_fries", "french_onion_soup", "french_toast", "fried_calamari", "fried_rice",
	"frozen_yogurt", "garlic_bread", "gnocchi", "greek_salad", "grilled_cheese_sandwich",
	"grilled_salmon", "guacamole", "gyoza", "hamburger", "hot_and_sour_soup",
	"hot_dog", "huevos_rancheros", "hummus", "ice_cream", "lasagna",
	"lobster_bisque", "lobster_roll_sandwich", "macaroni_and_cheese", "macarons", "miso_soup",
	"mussels", "nachos", "omelette", "onion_rings", "oysters",
	"pad_thai", "paella", "pancakes", "panna_cotta", "peking_duck",
	"pho", "pizza", "pork_chop", "poutine", "prime_rib",
	"pulled_pork_sandwich", "ramen", "ravioli", "red_velvet_cake", "risotto",
	"samosa", "sashimi", "scallops", "seaweed_salad", "shrimp_and_grits",
	"spaghetti_bolognese", "spaghetti_carbonara", "spring_rolls", "steak", "strawberry_shortcake",
	"sushi", "tacos", "takoyaki", "tiramisu", "tuna_tartare", "waffles",
}
