package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestMergeNutritionSources_Priority(t *testing.T) {
	vision := &NutritionValues{Calories: 100}
	search := &NutritionValues{Calories: 200}
	user := &NutritionOverride{Calories: f(300)}

	assert.Equal(t, 300.0, MergeNutritionSources(vision, search, user).Calories)
	assert.Equal(t, 200.0, MergeNutritionSources(vision, search, nil).Calories)
	assert.Equal(t, 100.0, MergeNutritionSources(vision, nil, nil).Calories)
}

func TestMergeNutritionSources_SearchZeroDoesNotOverride(t *testing.T) {
	vision := &NutritionValues{Calories: 100, ProteinG: 8}
	search := &NutritionValues{Calories: 200, ProteinG: 0}

	merged := MergeNutritionSources(vision, search, nil)

	assert.Equal(t, 200.0, merged.Calories)
	// A zero search field is indistinguishable from missing data, so the
	// vision value survives. Documented behavior, not an accident.
	assert.Equal(t, 8.0, merged.ProteinG)
}

func TestMergeNutritionSources_UserZeroOverrides(t *testing.T) {
	vision := &NutritionValues{ProteinG: 8}
	user := &NutritionOverride{ProteinG: f(0)}

	merged := MergeNutritionSources(vision, nil, user)

	assert.Equal(t, 0.0, merged.ProteinG)
}

func TestMergeNutritionSources_SourceTrail(t *testing.T) {
	vision := &NutritionValues{Calories: 100}
	search := &NutritionValues{Calories: 200}
	user := &NutritionOverride{Calories: f(300)}

	assert.Equal(t, "vision+search+user", MergeNutritionSources(vision, search, user).Source)
	assert.Equal(t, "vision", MergeNutritionSources(vision, nil, nil).Source)
}

func TestValidateNutrition_Clamps(t *testing.T) {
	out := ValidateNutrition(NutritionValues{
		Calories: 5000,
		ProteinG: -4,
		CarbsG:   55.555,
		FatG:     101,
		FiberG:   80,
		SugarG:   -0.01,
		SodiumMg: 99999,
	})

	assert.Equal(t, 900.0, out.Calories)
	assert.Equal(t, 0.0, out.ProteinG)
	assert.Equal(t, 55.56, out.CarbsG)
	assert.Equal(t, 100.0, out.FatG)
	assert.Equal(t, 50.0, out.FiberG)
	assert.Equal(t, 0.0, out.SugarG)
	assert.Equal(t, 10000.0, out.SodiumMg)
}

func TestMergeNutritionSources_ClampsMergedResult(t *testing.T) {
	vision := &NutritionValues{Calories: 5000}

	assert.Equal(t, 900.0, MergeNutritionSources(vision, nil, nil).Calories)
}
