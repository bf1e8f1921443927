package services

// RawVisionItem is the unstructured record extracted from a vision model
// response before any normalization. PortionText is free text ("150g",
// "1 cup", "medium"); Confidence is whatever the model claimed, unclamped.
type RawVisionItem struct {
	Name        string  `json:"name"`
	PortionText string  `json:"portion"`
	Confidence  float64 `json:"confidence"`
}

// NutritionValues holds nutrition for a concrete portion (not per-100g).
type NutritionValues struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
	SodiumMg float64 `json:"sodium_mg"`
	Source   string  `json:"source,omitempty"`
}

// NutritionPer100g is the normalized per-100g payload of a product
// database record, prior to portion scaling.
type NutritionPer100g struct {
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	FiberPer100g    float64 `json:"fiber_per_100g"`
	SugarPer100g    float64 `json:"sugar_per_100g"`
	SodiumPer100g   float64 `json:"sodium_per_100g"` // grams, as reported upstream
	SaltPer100g     float64 `json:"salt_per_100g"`
}

// NutritionSearchResult is one hit from the external food search.
type NutritionSearchResult struct {
	Source    string            `json:"source"` // "openfoodfacts" | "wikipedia"
	Title     string            `json:"title"`
	URL       string            `json:"url"`
	Snippet   string            `json:"snippet"`
	Nutrition *NutritionPer100g `json:"nutrition,omitempty"`
	Barcode   string            `json:"barcode,omitempty"`
	ImageURL  string            `json:"image_url,omitempty"`
}

// FoodCandidate is the pipeline's primary output unit.
type FoodCandidate struct {
	Name          string                  `json:"name"`
	PortionGrams  float64                 `json:"portion_grams"`
	Confidence    float64                 `json:"confidence"`
	Nutrition     NutritionValues         `json:"nutrition"`
	SearchResults []NutritionSearchResult `json:"search_results,omitempty"`
}

// Analysis source tags carried in AnalysisMeta.Source.
const (
	SourceVision   = "vision"
	SourceFallback = "fallback"
)

// AnalysisMeta carries non-fatal diagnostics alongside the candidate list.
type AnalysisMeta struct {
	Source  string   `json:"source,omitempty"`
	Warning string   `json:"warning,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}
