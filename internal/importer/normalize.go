package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Normalizers for raw structured-data values. Structured data in the wild is
// loosely typed, so every function here accepts `any` and degrades to nil
// (or an empty list) instead of failing.

var (
	durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)
	digitsPattern   = regexp.MustCompile(`\d+`)
)

// extractText flattens a name/description value: strings are trimmed, lists
// are newline-joined, maps yield their text (or name) key.
func extractText(value any) *string {
	switch v := value.(type) {
	case string:
		return stringPtr(strings.TrimSpace(v))
	case []any:
		var lines []string
		for _, item := range v {
			if item == nil {
				continue
			}
			if s := fmt.Sprint(item); s != "" {
				lines = append(lines, s)
			}
		}
		if lines == nil {
			return nil
		}
		joined := strings.Join(lines, "\n")
		return &joined
	case map[string]any:
		if text, ok := v["text"].(string); ok && text != "" {
			return &text
		}
		if name, ok := v["name"].(string); ok && name != "" {
			return &name
		}
		return nil
	default:
		return nil
	}
}

// parseInstructions renders recipeInstructions as a single string. Lists
// are numbered by element position (1-based); map entries contribute their
// text or name and are skipped when they carry neither.
func parseInstructions(value any) *string {
	switch v := value.(type) {
	case string:
		return stringPtr(strings.TrimSpace(v))
	case []any:
		var steps []string
		for i, item := range v {
			switch step := item.(type) {
			case string:
				steps = append(steps, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(step)))
			case map[string]any:
				text, _ := step["text"].(string)
				if text == "" {
					text, _ = step["name"].(string)
				}
				if text != "" {
					steps = append(steps, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(text)))
				}
			}
		}
		if steps == nil {
			return nil
		}
		joined := strings.Join(steps, "\n")
		return &joined
	default:
		return nil
	}
}

// parseDuration converts an ISO-8601 duration like "PT1H30M" to whole
// minutes. A nonzero seconds component rounds the total up by one minute.
func parseDuration(value any) *int {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	total := hours*60 + minutes
	if seconds > 0 {
		total++
	}
	return &total
}

// parseServings pulls a serving count out of recipeYield, which may be a
// number, a string like "8 servings", or a list of either.
func parseServings(value any) *int {
	switch v := value.(type) {
	case float64:
		if v == 0 {
			return nil
		}
		n := int(v)
		return &n
	case int:
		if v == 0 {
			return nil
		}
		return &v
	case string:
		if match := digitsPattern.FindString(v); match != "" {
			if n, err := strconv.Atoi(match); err == nil {
				return &n
			}
		}
		return nil
	case []any:
		if len(v) == 0 {
			return nil
		}
		return parseServings(v[0])
	default:
		return nil
	}
}

// parseIngredients accepts only a list; each element is stringified and
// trimmed. Anything else yields an empty list, never nil.
func parseIngredients(value any) []string {
	ingredients := []string{}
	list, ok := value.([]any)
	if !ok {
		return ingredients
	}
	for _, item := range list {
		if item == nil {
			continue
		}
		line := strings.TrimSpace(fmt.Sprint(item))
		if line != "" {
			ingredients = append(ingredients, line)
		}
	}
	return ingredients
}

// parseImageURL handles the common shapes of the schema.org image field:
// a URL string, a list whose first element is a string or an object with a
// url key, or a single such object.
func parseImageURL(value any) *string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return &v
	case []any:
		if len(v) == 0 {
			return nil
		}
		if s, ok := v[0].(string); ok && s != "" {
			return &s
		}
		if obj, ok := v[0].(map[string]any); ok {
			if u, ok := obj["url"].(string); ok && u != "" {
				return &u
			}
		}
		return nil
	case map[string]any:
		if u, ok := v["url"].(string); ok && u != "" {
			return &u
		}
		return nil
	default:
		return nil
	}
}

// stringPtr returns nil for empty strings so absent and empty never blur.
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
