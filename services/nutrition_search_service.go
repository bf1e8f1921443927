package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chartmann1590/NutriCoach-AI/config"

	gocache "github.com/patrickmn/go-cache"
)

type NutritionSearchService struct {
	offURL  string
	wikiURL string
	client  *http.Client
	cache   *gocache.Cache
}

// NewNutritionSearchService initializes the service with the configured
// endpoints. Lookups are cached briefly so the same food name appearing
// several times in one photo hits the network once.
func NewNutritionSearchService() *NutritionSearchService {
	return NewNutritionSearchServiceWithURLs(config.OpenFoodFactsURL(), config.WikipediaURL())
}

func NewNutritionSearchServiceWithURLs(offURL, wikiURL string) *NutritionSearchService {
	return &NutritionSearchService{
		offURL:  strings.TrimRight(offURL, "/"),
		wikiURL: strings.TrimRight(wikiURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   gocache.New(time.Hour, 2*time.Hour),
	}
}

// SearchFood queries the product database and the encyclopedia and
// returns the combined hits, product database first. Lookup failures
// degrade to fewer results, never to an error.
func (s *NutritionSearchService) SearchFood(ctx context.Context, query string) []NutritionSearchResult {
	if cached, found := s.cache.Get("search:" + strings.ToLower(query)); found {
		return cached.([]NutritionSearchResult)
	}

	var results []NutritionSearchResult
	results = append(results, s.SearchOpenFoodFacts(ctx, query)...)
	results = append(results, s.SearchWikipedia(ctx, query)...)

	if len(results) > 10 {
		results = results[:10]
	}
	s.cache.Set("search:"+strings.ToLower(query), results, gocache.DefaultExpiration)
	return results
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offProduct struct {
	ProductName   string `json:"product_name"`
	ProductNameEN string `json:"product_name_en"`
	Brands        string `json:"brands"`
	Code          string `json:"code"`
	ImageURL      string `json:"image_url"`
	// Nutrient values arrive as numbers or strings depending on the
	// product record, hence the raw map.
	Nutriments map[string]interface{} `json:"nutriments"`
}

// SearchOpenFoodFacts calls the Open Food Facts free-text search endpoint.
func (s *NutritionSearchService) SearchOpenFoodFacts(ctx context.Context, query string) []NutritionSearchResult {
	u := fmt.Sprintf(
		"%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=5",
		s.offURL, url.QueryEscape(query),
	)

	body, err := s.getJSON(ctx, u)
	if err != nil {
		return nil
	}

	var sr offSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil
	}

	results := make([]NutritionSearchResult, 0, len(sr.Products))
	for _, p := range sr.Products {
		if r := s.normalizeProduct(p); r != nil {
			results = append(results, *r)
		}
	}
	return results
}

// SearchBarcode looks up a single product by barcode.
func (s *NutritionSearchService) SearchBarcode(ctx context.Context, barcode string) *NutritionSearchResult {
	u := fmt.Sprintf("%s/api/v0/product/%s.json", s.offURL, url.PathEscape(barcode))

	body, err := s.getJSON(ctx, u)
	if err != nil {
		return nil
	}

	var br struct {
		Status  int        `json:"status"`
		Product offProduct `json:"product"`
	}
	if err := json.Unmarshal(body, &br); err != nil || br.Status != 1 {
		return nil
	}
	return s.normalizeProduct(br.Product)
}

type wikiSummaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// SearchWikipedia fetches the encyclopedia summary for the query. It
// never carries structured nutrition, only human-readable context.
func (s *NutritionSearchService) SearchWikipedia(ctx context.Context, query string) []NutritionSearchResult {
	u := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", s.wikiURL, url.PathEscape(query))

	body, err := s.getJSON(ctx, u)
	if err != nil {
		return nil
	}

	var wr wikiSummaryResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return nil
	}
	title := wr.Title
	if title == "" {
		title = query
	}
	return []NutritionSearchResult{{
		Source:  "wikipedia",
		Title:   title,
		URL:     wr.ContentURLs.Desktop.Page,
		Snippet: wr.Extract,
	}}
}

func (s *NutritionSearchService) getJSON(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// normalizeProduct converts an Open Food Facts record into a search
// result with per-100g nutrition. Products without a name are dropped.
func (s *NutritionSearchService) normalizeProduct(p offProduct) *NutritionSearchResult {
	name := p.ProductName
	if name == "" {
		name = p.ProductNameEN
	}
	if name == "" {
		return nil
	}

	nutrition := &NutritionPer100g{
		CaloriesPer100g: nutrimentValue(p.Nutriments, "energy-kcal_100g"),
		ProteinPer100g:  nutrimentValue(p.Nutriments, "proteins_100g"),
		CarbsPer100g:    nutrimentValue(p.Nutriments, "carbohydrates_100g"),
		FatPer100g:      nutrimentValue(p.Nutriments, "fat_100g"),
		FiberPer100g:    nutrimentValue(p.Nutriments, "fiber_100g"),
		SugarPer100g:    nutrimentValue(p.Nutriments, "sugars_100g"),
		SodiumPer100g:   nutrimentValue(p.Nutriments, "sodium_100g"),
		SaltPer100g:     nutrimentValue(p.Nutriments, "salt_100g"),
	}

	snippet := ""
	if p.Brands != "" {
		snippet = "Brand: " + p.Brands
	}

	return &NutritionSearchResult{
		Source:    "openfoodfacts",
		Title:     strings.TrimSpace(name + " " + p.Brands),
		URL:       fmt.Sprintf("%s/product/%s", s.offURL, p.Code),
		Snippet:   snippet,
		Nutrition: nutrition,
		Barcode:   p.Code,
		ImageURL:  p.ImageURL,
	}
}

// nutrimentValue coerces an Open Food Facts nutrient field to a float;
// absent or malformed values count as zero.
func nutrimentValue(nutriments map[string]interface{}, key string) float64 {
	switch v := nutriments[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// basicFoods is the built-in per-100g estimate table for common foods,
// matched by substring against the candidate name. Checked in order so
// multi-word entries win over their shorter prefixes.
var basicFoods = []struct {
	key      string
	calories float64
	protein  float64
	carbs    float64
	fat      float64
}{
	{"chicken breast", 165, 31, 0, 3.6},
	{"apple", 52, 0.3, 14, 0.2},
	{"banana", 89, 1.1, 23, 0.3},
	{"rice", 130, 2.7, 28, 0.3},
	{"egg", 155, 13, 1.1, 11},
	{"bread", 265, 9, 49, 3.2},
	{"milk", 42, 3.4, 5, 1},
}

// GetNutritionEstimate resolves nutrition for a food name scaled to the
// given portion. The first product-database hit carrying nutrition wins;
// otherwise the built-in table, and finally a flat generic estimate.
// Absence of data always degrades to an estimate, never an error.
func (s *NutritionSearchService) GetNutritionEstimate(ctx context.Context, foodName string, grams float64) NutritionValues {
	results := s.SearchFood(ctx, foodName)

	for _, r := range results {
		if r.Source == "openfoodfacts" && r.Nutrition != nil {
			return ScaleNutrition(*r.Nutrition, grams, r.Title)
		}
	}
	return BasicEstimate(foodName, grams)
}

// ScaleNutrition converts a per-100g record into values for the given
// portion. Values are clamped to plausible per-100g ranges before
// scaling; sodium is converted from grams to milligrams.
func ScaleNutrition(per100g NutritionPer100g, grams float64, sourceLabel string) NutritionValues {
	clamped := ValidateNutrition(NutritionValues{
		Calories: per100g.CaloriesPer100g,
		ProteinG: per100g.ProteinPer100g,
		CarbsG:   per100g.CarbsPer100g,
		FatG:     per100g.FatPer100g,
		FiberG:   per100g.FiberPer100g,
		SugarG:   per100g.SugarPer100g,
		SodiumMg: per100g.SodiumPer100g * 1000,
	})

	factor := grams / 100
	return NutritionValues{
		Calories: round2(clamped.Calories * factor),
		ProteinG: round2(clamped.ProteinG * factor),
		CarbsG:   round2(clamped.CarbsG * factor),
		FatG:     round2(clamped.FatG * factor),
		FiberG:   round2(clamped.FiberG * factor),
		SugarG:   round2(clamped.SugarG * factor),
		SodiumMg: round2(clamped.SodiumMg * factor),
		Source:   sourceLabel,
	}
}

// BasicEstimate provides nutrition for foods the search could not
// resolve: the built-in table when the name matches, otherwise a flat
// generic estimate.
func BasicEstimate(foodName string, grams float64) NutritionValues {
	factor := grams / 100
	lower := strings.ToLower(foodName)

	for _, f := range basicFoods {
		if strings.Contains(lower, f.key) {
			return NutritionValues{
				Calories: round2(f.calories * factor),
				ProteinG: round2(f.protein * factor),
				CarbsG:   round2(f.carbs * factor),
				FatG:     round2(f.fat * factor),
				Source:   "Basic estimate",
			}
		}
	}

	return NutritionValues{
		Calories: round2(100 * factor),
		ProteinG: round2(5 * factor),
		CarbsG:   round2(15 * factor),
		FatG:     round2(3 * factor),
		Source:   "Generic estimate",
	}
}
