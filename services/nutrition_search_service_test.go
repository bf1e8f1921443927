package services

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOFFURL  = "https://off.test"
	testWikiURL = "https://wiki.test"
)

func newTestSearchService() *NutritionSearchService {
	return NewNutritionSearchServiceWithURLs(testOFFURL, testWikiURL)
}

func offSearchBody(products ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"products": products}
}

func TestSearchFood_CombinesSourcesProductFirst(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://off\.test/cgi/search\.pl`,
		httpmock.NewJsonResponderOrPanic(200, offSearchBody(map[string]interface{}{
			"product_name": "Banana",
			"brands":       "Chiquita",
			"code":         "123",
			"nutriments": map[string]interface{}{
				"energy-kcal_100g":   89.0,
				"proteins_100g":      1.1,
				"carbohydrates_100g": 23.0,
				"fat_100g":           0.3,
			},
		})))
	httpmock.RegisterResponder("GET", `=~^https://wiki\.test/api/rest_v1/page/summary/`,
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"title":   "Banana",
			"extract": "A banana is an elongated, edible fruit.",
			"content_urls": map[string]interface{}{
				"desktop": map[string]interface{}{"page": "https://en.wikipedia.org/wiki/Banana"},
			},
		}))

	results := newTestSearchService().SearchFood(context.Background(), "banana")

	require.Len(t, results, 2)
	assert.Equal(t, "openfoodfacts", results[0].Source)
	assert.Equal(t, "Banana Chiquita", results[0].Title)
	require.NotNil(t, results[0].Nutrition)
	assert.InDelta(t, 89.0, results[0].Nutrition.CaloriesPer100g, 0.001)
	assert.Equal(t, "wikipedia", results[1].Source)
	assert.Nil(t, results[1].Nutrition)
}

func TestSearchFood_FailuresDegradeToEmpty(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	// No responders: every call fails at the transport.

	results := newTestSearchService().SearchFood(context.Background(), "banana")

	assert.Empty(t, results)
}

func TestGetNutritionEstimate_ScalesProductNutrition(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://off\.test/cgi/search\.pl`,
		httpmock.NewJsonResponderOrPanic(200, offSearchBody(map[string]interface{}{
			"product_name": "Oatmeal",
			"code":         "456",
			"nutriments": map[string]interface{}{
				"energy-kcal_100g":   380.0,
				"proteins_100g":      13.0,
				"carbohydrates_100g": 68.0,
				"fat_100g":           7.0,
				"fiber_100g":         10.0,
				"sugars_100g":        1.0,
				"sodium_100g":        0.002,
			},
		})))
	httpmock.RegisterResponder("GET", `=~^https://wiki\.test/`,
		httpmock.NewStringResponder(404, "not found"))

	got := newTestSearchService().GetNutritionEstimate(context.Background(), "oatmeal", 50)

	assert.InDelta(t, 190.0, got.Calories, 0.01)
	assert.InDelta(t, 6.5, got.ProteinG, 0.01)
	assert.InDelta(t, 34.0, got.CarbsG, 0.01)
	assert.InDelta(t, 3.5, got.FatG, 0.01)
	assert.InDelta(t, 5.0, got.FiberG, 0.01)
	assert.InDelta(t, 0.5, got.SugarG, 0.01)
	// Sodium: 0.002 g/100g -> 2 mg/100g -> 1 mg at 50g.
	assert.InDelta(t, 1.0, got.SodiumMg, 0.01)
	assert.Equal(t, "Oatmeal", got.Source)
}

func TestGetNutritionEstimate_BuiltInTableFallback(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	// No network: resolver must fall back to the built-in table.

	got := newTestSearchService().GetNutritionEstimate(context.Background(), "Grilled Chicken Breast", 150)

	assert.InDelta(t, 247.5, got.Calories, 0.01)
	assert.InDelta(t, 46.5, got.ProteinG, 0.01)
	assert.Equal(t, "Basic estimate", got.Source)
}

func TestGetNutritionEstimate_GenericFallback(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	got := newTestSearchService().GetNutritionEstimate(context.Background(), "mystery dish", 200)

	assert.InDelta(t, 200.0, got.Calories, 0.01)
	assert.InDelta(t, 10.0, got.ProteinG, 0.01)
	assert.InDelta(t, 30.0, got.CarbsG, 0.01)
	assert.InDelta(t, 6.0, got.FatG, 0.01)
	assert.Equal(t, "Generic estimate", got.Source)
}

func TestSearchBarcode(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://off.test/api/v0/product/737628064502.json",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"status": 1,
			"product": map[string]interface{}{
				"product_name": "Rice Noodles",
				"code":         "737628064502",
				"nutriments": map[string]interface{}{
					"energy-kcal_100g": 360.0,
				},
			},
		}))
	httpmock.RegisterResponder("GET", "https://off.test/api/v0/product/000.json",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{"status": 0}))

	svc := newTestSearchService()

	found := svc.SearchBarcode(context.Background(), "737628064502")
	require.NotNil(t, found)
	assert.Equal(t, "Rice Noodles", found.Title)
	assert.Equal(t, "737628064502", found.Barcode)

	assert.Nil(t, svc.SearchBarcode(context.Background(), "000"))
}

func TestNormalizeProduct_StringNutrimentsAndMissingName(t *testing.T) {
	svc := newTestSearchService()

	r := svc.normalizeProduct(offProduct{
		ProductName: "Crackers",
		Nutriments: map[string]interface{}{
			"energy-kcal_100g": "430",
			"proteins_100g":    "not a number",
		},
	})
	require.NotNil(t, r)
	assert.InDelta(t, 430.0, r.Nutrition.CaloriesPer100g, 0.001)
	assert.Equal(t, 0.0, r.Nutrition.ProteinPer100g)

	assert.Nil(t, svc.normalizeProduct(offProduct{Brands: "Nameless"}))
}

func TestSearchFood_CachesResults(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://off\.test/cgi/search\.pl`,
		httpmock.NewJsonResponderOrPanic(200, offSearchBody(map[string]interface{}{
			"product_name": "Apple",
			"code":         "1",
			"nutriments":   map[string]interface{}{"energy-kcal_100g": 52.0},
		})))
	httpmock.RegisterResponder("GET", `=~^https://wiki\.test/`,
		httpmock.NewStringResponder(404, "not found"))

	svc := newTestSearchService()
	svc.SearchFood(context.Background(), "apple")
	svc.SearchFood(context.Background(), "apple")

	assert.Equal(t, 1, httpmock.GetCallCountInfo()[`GET =~^https://off\.test/cgi/search\.pl`])
}
