package services

import (
	"context"
	"errors"
	"strings"

	"github.com/chartmann1590/NutriCoach-AI/config"
	"github.com/chartmann1590/NutriCoach-AI/models"
	"github.com/chartmann1590/NutriCoach-AI/utils"

	"gorm.io/gorm"
)

// foodPrompt instructs the vision model to emit a strict JSON item list.
// Everything downstream still assumes the model may ignore it.
const foodPrompt = `Analyze this food image and identify all visible food items. For each food item you identify, provide:

1. The specific name of the food item (be as specific as possible, e.g., "grilled chicken breast", "steamed broccoli", "brown rice")
2. An estimated portion size in grams based on the visual appearance
3. Your confidence level from 0.0 to 1.0

Format your response as a JSON array like this:
[
  {"name": "grilled chicken breast", "portion": "150g", "confidence": 0.85},
  {"name": "steamed broccoli", "portion": "80g", "confidence": 0.75},
  {"name": "brown rice", "portion": "100g", "confidence": 0.90}
]

Focus only on food items that are clearly visible and identifiable. Ignore plates, utensils, or decorative items.`

type AnalysisService struct {
	ollama      *OllamaService
	search      *NutritionSearchService
	classifier  *VisionClassifier
	visionModel string
	log         utils.Logger
}

// NewAnalysisService wires the pipeline from the configured defaults.
func NewAnalysisService(log utils.Logger) *AnalysisService {
	return NewAnalysisServiceWith(
		NewOllamaService(),
		NewNutritionSearchService(),
		NewVisionClassifier(),
		config.DefaultVisionModel(),
		log,
	)
}

// NewAnalysisServiceWith assembles the pipeline from explicit parts; an
// empty visionModel routes every request straight to the fallback
// classifier.
func NewAnalysisServiceWith(ollama *OllamaService, search *NutritionSearchService, classifier *VisionClassifier, visionModel string, log utils.Logger) *AnalysisService {
	return &AnalysisService{
		ollama:      ollama,
		search:      search,
		classifier:  classifier,
		visionModel: visionModel,
		log:         log,
	}
}

// NewAnalysisServiceForUser honors the user's saved Ollama endpoint and
// vision model when a settings row exists, falling back to config
// defaults otherwise.
func NewAnalysisServiceForUser(db *gorm.DB, userID uint, log utils.Logger) *AnalysisService {
	baseURL := config.OllamaURL()
	model := config.DefaultVisionModel()

	if db != nil {
		var settings models.Settings
		if err := db.Where("user_id = ?", userID).First(&settings).Error; err == nil {
			if settings.OllamaURL != "" {
				baseURL = settings.OllamaURL
			}
			if settings.VisionModel != "" {
				model = settings.VisionModel
			}
		}
	}

	return NewAnalysisServiceWith(
		NewOllamaServiceWithURL(baseURL, config.VisionTimeout()),
		NewNutritionSearchService(),
		NewVisionClassifier(),
		model,
		log,
	)
}

// AnalyzePhoto runs the full pipeline for one image: vision call, item
// parsing, fallback classification when the vision stage yields nothing,
// portion normalization, nutrition resolution and merging. It returns the
// candidates, the raw vision items they came from, and diagnostics.
// Individual stage failures land in meta.Errors; the call itself never
// fails.
func (s *AnalysisService) AnalyzePhoto(ctx context.Context, imagePath string) ([]FoodCandidate, []RawVisionItem, AnalysisMeta) {
	meta := AnalysisMeta{}
	var visionItems []RawVisionItem

	if s.visionModel == "" {
		meta.Warning = "No vision model configured; using fallback classifier"
	} else {
		responseText, err := s.ollama.AnalyzeImage(ctx, imagePath, foodPrompt, s.visionModel)
		switch {
		case err != nil:
			if errors.Is(err, ErrVisionUnavailable) {
				s.log.Warn("vision model unreachable", map[string]interface{}{"error": err.Error()})
			}
			meta.Errors = append(meta.Errors, "vision error: "+err.Error())
		case strings.TrimSpace(responseText) == "":
			meta.Warning = "Vision model returned no result"
		default:
			visionItems = ParseVisionResponse(responseText)
			if len(visionItems) > 0 {
				meta.Source = SourceVision
				s.log.Info("vision items parsed", map[string]interface{}{"count": len(visionItems)})
			}
		}
	}

	if len(visionItems) == 0 {
		s.log.Info("using fallback local classifier", nil)
		visionItems = s.classifier.ClassifyImage(imagePath)
		meta.Source = SourceFallback
	}

	candidates := make([]FoodCandidate, 0, len(visionItems))
	for _, item := range visionItems {
		candidates = append(candidates, s.buildCandidate(ctx, item))
	}

	// A truly empty result with nothing to tell the caller is the one
	// unrecoverable outcome; synthesize a diagnostic for it.
	if len(candidates) == 0 && meta.Warning == "" && len(meta.Errors) == 0 {
		meta.Errors = append(meta.Errors, "analysis produced no candidates and no diagnostics")
	}

	return candidates, visionItems, meta
}

// buildCandidate resolves one raw item into a fully-typed candidate.
// Nutrition lookup failures degrade to the built-in estimate table; they
// never drop the candidate.
func (s *AnalysisService) buildCandidate(ctx context.Context, item RawVisionItem) FoodCandidate {
	grams := ParsePortion(item.PortionText)

	results := s.search.SearchFood(ctx, item.Name)
	if len(results) > 3 {
		results = results[:3]
	}

	// First product-database hit carrying nutrition wins; the estimate
	// table covers everything else.
	var searchNutrition *NutritionValues
	for _, r := range results {
		if r.Source == "openfoodfacts" && r.Nutrition != nil {
			scaled := ScaleNutrition(*r.Nutrition, grams, r.Title)
			searchNutrition = &scaled
			break
		}
	}

	estimate := BasicEstimate(item.Name, grams)
	merged := MergeNutritionSources(&estimate, searchNutrition, nil)
	if searchNutrition != nil {
		merged.Source = searchNutrition.Source
	} else {
		merged.Source = estimate.Source
	}

	confidence := item.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return FoodCandidate{
		Name:          item.Name,
		PortionGrams:  grams,
		Confidence:    confidence,
		Nutrition:     merged,
		SearchResults: results,
	}
}
