package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxVisionItems caps the candidate list no matter which strategy produced it.
const maxVisionItems = 5

// parseStrategy attempts to extract items from raw response text.
// ok is false when the strategy cannot recover anything, letting the
// chain advance to the next one.
type parseStrategy struct {
	name string
	fn   func(text string) ([]RawVisionItem, bool)
}

// Strategies are tried strictly in order; first success wins. The order
// is what makes a valid JSON body immune to the text heuristics.
var parseStrategies = []parseStrategy{
	{"strict_json", parseStrictJSON},
	{"embedded_json", parseEmbeddedJSON},
	{"heuristic_text", parseHeuristicText},
}

// ParseVisionResponse turns whatever the vision model produced into raw
// food items. Non-empty input always yields at least one item: when every
// strategy comes up empty a single generic record is emitted so the
// pipeline never terminates with zero items on a non-empty response.
func ParseVisionResponse(text string) []RawVisionItem {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	for _, s := range parseStrategies {
		if items, ok := s.fn(trimmed); ok && len(items) > 0 {
			if len(items) > maxVisionItems {
				items = items[:maxVisionItems]
			}
			return items
		}
	}

	return []RawVisionItem{{Name: "Mixed Food", PortionText: "100g", Confidence: 0.5}}
}

// parseStrictJSON parses the whole trimmed response as a JSON value. A
// bare object is wrapped into a one-element array, since the model
// sometimes omits the array for a single detected item. Any other JSON
// shape is a failure, not an error.
func parseStrictJSON(text string) ([]RawVisionItem, bool) {
	switch sniffJSON(text) {
	case jsonArrayShape:
		return decodeItemArray([]byte(text))
	case jsonObjectShape:
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, false
		}
		item, ok := itemFromMap(obj)
		if !ok {
			return nil, false
		}
		return []RawVisionItem{item}, true
	default:
		return nil, false
	}
}

// parseEmbeddedJSON looks for the first balanced top-level [...] span in
// otherwise non-JSON text ("Sure! Here is the JSON: [...]").
func parseEmbeddedJSON(text string) ([]RawVisionItem, bool) {
	span, ok := extractJSONArray(text)
	if !ok {
		return nil, false
	}
	return decodeItemArray([]byte(span))
}

type jsonShape int

const (
	jsonInvalidShape jsonShape = iota
	jsonArrayShape
	jsonObjectShape
)

func sniffJSON(text string) jsonShape {
	if !json.Valid([]byte(text)) {
		return jsonInvalidShape
	}
	switch text[0] {
	case '[':
		return jsonArrayShape
	case '{':
		return jsonObjectShape
	default:
		return jsonInvalidShape
	}
}

// extractJSONArray returns the first balanced top-level [...] span,
// skipping brackets inside JSON string literals.
func extractJSONArray(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	for start >= 0 {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(text); i++ {
			c := text[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
		next := strings.IndexByte(text[start+1:], '[')
		if next < 0 {
			break
		}
		start = start + 1 + next
	}
	return "", false
}

func decodeItemArray(data []byte) ([]RawVisionItem, bool) {
	var objs []map[string]interface{}
	if err := json.Unmarshal(data, &objs); err != nil {
		return nil, false
	}
	items := make([]RawVisionItem, 0, len(objs))
	for _, obj := range objs {
		if item, ok := itemFromMap(obj); ok {
			items = append(items, item)
		}
	}
	return items, len(items) > 0
}

// itemFromMap maps one loosely-typed JSON object onto a RawVisionItem.
// Models disagree about field shapes: portion may be a string ("150g") or
// a bare number, and some emit portion_grams instead.
func itemFromMap(obj map[string]interface{}) (RawVisionItem, bool) {
	name, _ := obj["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return RawVisionItem{}, false
	}

	item := RawVisionItem{Name: name, PortionText: "100g", Confidence: 0.7}

	switch p := obj["portion"].(type) {
	case string:
		if strings.TrimSpace(p) != "" {
			item.PortionText = strings.TrimSpace(p)
		}
	case float64:
		item.PortionText = fmt.Sprintf("%gg", p)
	}
	if g, ok := obj["portion_grams"].(float64); ok {
		item.PortionText = fmt.Sprintf("%gg", g)
	}

	switch c := obj["confidence"].(type) {
	case float64:
		item.Confidence = c
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(c), 64); err == nil {
			item.Confidence = f
		}
	}

	return item, true
}

var (
	bulletPrefixRe = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*•]\s*)`)
	itemLabelRe    = regexp.MustCompile(`(?i)^(?:food|dish|item|name)\s*(?:\d+)?\s*[:\-]?\s*`)
	portionTokenRe = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(kg|g|grams?|oz|lbs?|pounds?|cups?|tbsp|tablespoons?|tsp|teaspoons?|slices?|pieces?)\b`)
	numberTokenRe  = regexp.MustCompile(`\d+\.?\d*`)
	sightPhraseRe  = regexp.MustCompile(`(?i)(?:i see|i can see|looks like|this (?:is|appears to be)|contains)\s+([^.\n]+)`)
)

// foodStems are common food words used as a last resort when prose has no
// recognizable item structure at all.
var foodStems = []string{
	"chicken", "rice", "salad", "bread", "egg", "fish", "beef", "pork",
	"pasta", "potato", "apple", "banana", "vegetable", "soup", "sandwich",
	"cheese", "noodle", "tofu", "shrimp", "steak",
}

// parseHeuristicText parses free-form prose line by line. A line starts a
// new item when it carries a bullet/ordinal prefix or one of the item
// marker words; follow-up lines may refine the portion and confidence.
func parseHeuristicText(text string) ([]RawVisionItem, bool) {
	var items []RawVisionItem
	var cur *RawVisionItem

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		// "Here are the items:" style headers introduce a list without
		// naming anything themselves.
		if strings.HasSuffix(line, ":") && !bulletPrefixRe.MatchString(line) {
			continue
		}

		starts := bulletPrefixRe.MatchString(line) ||
			strings.Contains(line, " - ") ||
			strings.Contains(line, "•") ||
			strings.Contains(lower, "food") ||
			strings.Contains(lower, "dish") ||
			strings.Contains(lower, "item")

		if starts {
			if cur != nil && cur.Name != "" {
				items = append(items, *cur)
			}
			stripped := bulletPrefixRe.ReplaceAllString(line, "")
			stripped = itemLabelRe.ReplaceAllString(stripped, "")
			name, rest := splitItemLine(stripped)
			cur = &RawVisionItem{
				Name:        name,
				PortionText: "100g",
				Confidence:  0.7,
			}
			// The marker line itself often carries the portion:
			// "1. Grilled chicken breast, 150g" or
			// "Grilled chicken breast - 150 grams".
			if m := portionTokenRe.FindString(rest); m != "" {
				cur.PortionText = strings.TrimSpace(m)
			}
			continue
		}

		if cur == nil {
			continue
		}
		if strings.Contains(lower, "gram") || strings.Contains(lower, "portion") || strings.Contains(lower, "size") {
			if m := portionTokenRe.FindString(line); m != "" {
				cur.PortionText = strings.TrimSpace(m)
			} else if n := numberTokenRe.FindString(line); n != "" {
				cur.PortionText = n + "g"
			}
		}
		if strings.Contains(lower, "confidence") || strings.Contains(lower, "sure") {
			if n := numberTokenRe.FindString(line); n != "" {
				if conf, err := strconv.ParseFloat(n, 64); err == nil {
					if conf > 1 {
						conf = conf / 100
					}
					cur.Confidence = conf
				}
			}
		}
	}
	if cur != nil && cur.Name != "" {
		items = append(items, *cur)
	}

	if len(items) == 0 {
		items = parseProsePhrases(text)
	}
	return items, len(items) > 0
}

// splitItemLine separates the item name from trailing detail text at the
// earliest dash/bullet separator, comma or opening parenthesis. A spaced
// dash is required so hyphenated names ("stir-fry") stay intact.
func splitItemLine(s string) (name, rest string) {
	cut := len(s)
	sepLen := 0
	for _, sep := range []string{" - ", "•", ",", "("} {
		if i := strings.Index(s, sep); i >= 0 && i < cut {
			cut = i
			sepLen = len(sep)
		}
	}
	if cut == len(s) {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:cut]), strings.TrimSpace(s[cut+sepLen:])
}

// parseProsePhrases extracts up to three food names from sentences like
// "I see a bowl of rice and some grilled chicken" when the response has
// no item markers anywhere.
func parseProsePhrases(text string) []RawVisionItem {
	var items []RawVisionItem
	seen := map[string]bool{}

	add := func(name string) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] || len(items) >= 3 {
			return
		}
		seen[key] = true
		items = append(items, RawVisionItem{Name: name, PortionText: "100g", Confidence: 0.5})
	}

	for _, m := range sightPhraseRe.FindAllStringSubmatch(text, -1) {
		phrase := m[1]
		if i := strings.IndexAny(phrase, ",("); i >= 0 {
			phrase = phrase[:i]
		}
		add(phrase)
	}

	if len(items) == 0 {
		lower := strings.ToLower(text)
		for _, stem := range foodStems {
			if strings.Contains(lower, stem) {
				add(stem)
			}
		}
	}
	return items
}
