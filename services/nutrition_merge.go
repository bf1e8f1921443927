package services

import (
	"math"
	"strings"
)

// NutritionOverride carries user-entered nutrition values. Pointer fields
// distinguish "not provided" from an explicit zero.
type NutritionOverride struct {
	Calories *float64 `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`
	FiberG   *float64 `json:"fiber_g"`
	SugarG   *float64 `json:"sugar_g"`
	SodiumMg *float64 `json:"sodium_mg"`
}

// MergeNutritionSources reconciles nutrition from the vision estimate,
// the search result and a user override, in that priority order: a user
// field wins whenever provided, a search field only when non-zero.
//
// The non-zero rule makes a genuinely zero search value (water's protein)
// indistinguishable from missing data, so a lower-priority source fills
// it. That matches the longstanding behavior of the merge and is kept
// deliberately rather than guessed away.
func MergeNutritionSources(vision, search *NutritionValues, user *NutritionOverride) NutritionValues {
	var merged NutritionValues
	var sources []string

	if vision != nil {
		merged = *vision
		sources = append(sources, "vision")
	}

	if search != nil {
		applyNonZero(&merged.Calories, search.Calories)
		applyNonZero(&merged.ProteinG, search.ProteinG)
		applyNonZero(&merged.CarbsG, search.CarbsG)
		applyNonZero(&merged.FatG, search.FatG)
		applyNonZero(&merged.FiberG, search.FiberG)
		applyNonZero(&merged.SugarG, search.SugarG)
		applyNonZero(&merged.SodiumMg, search.SodiumMg)
		sources = append(sources, "search")
	}

	if user != nil {
		applyOverride(&merged.Calories, user.Calories)
		applyOverride(&merged.ProteinG, user.ProteinG)
		applyOverride(&merged.CarbsG, user.CarbsG)
		applyOverride(&merged.FatG, user.FatG)
		applyOverride(&merged.FiberG, user.FiberG)
		applyOverride(&merged.SugarG, user.SugarG)
		applyOverride(&merged.SodiumMg, user.SodiumMg)
		sources = append(sources, "user")
	}

	merged.Source = strings.Join(sources, "+")
	return ValidateNutrition(merged)
}

func applyNonZero(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func applyOverride(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// nutritionRange is the physiologically plausible per-100g window for
// one nutrition field.
type nutritionRange struct {
	min, max float64
}

var nutritionRanges = struct {
	calories nutritionRange
	protein  nutritionRange
	carbs    nutritionRange
	fat      nutritionRange
	fiber    nutritionRange
	sugar    nutritionRange
	sodium   nutritionRange
}{
	calories: nutritionRange{0, 900},
	protein:  nutritionRange{0, 100},
	carbs:    nutritionRange{0, 100},
	fat:      nutritionRange{0, 100},
	fiber:    nutritionRange{0, 50},
	sugar:    nutritionRange{0, 100},
	sodium:   nutritionRange{0, 10000},
}

// ValidateNutrition clamps every field into its plausible range and
// rounds to two decimals. NaN and infinities become zero.
func ValidateNutrition(n NutritionValues) NutritionValues {
	return NutritionValues{
		Calories: clampRound(n.Calories, nutritionRanges.calories),
		ProteinG: clampRound(n.ProteinG, nutritionRanges.protein),
		CarbsG:   clampRound(n.CarbsG, nutritionRanges.carbs),
		FatG:     clampRound(n.FatG, nutritionRanges.fat),
		FiberG:   clampRound(n.FiberG, nutritionRanges.fiber),
		SugarG:   clampRound(n.SugarG, nutritionRanges.sugar),
		SodiumMg: clampRound(n.SodiumMg, nutritionRanges.sodium),
		Source:   n.Source,
	}
}

func clampRound(v float64, r nutritionRange) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < r.min {
		v = r.min
	}
	if v > r.max {
		v = r.max
	}
	return round2(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
