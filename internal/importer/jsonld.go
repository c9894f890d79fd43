package importer

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"
)

// extractRecipeJSONLD scans the page's JSON-LD blocks in document order and
// returns the first Recipe object found, either at the top level or inside
// an @graph array. Malformed blocks are skipped.
func extractRecipeJSONLD(doc *goquery.Document) map[string]any {
	var recipe map[string]any

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var decoded any
		if err := json.Unmarshal([]byte(s.Text()), &decoded); err != nil {
			return true
		}
		for _, item := range topLevelObjects(decoded) {
			if found := recipeFromObject(item); found != nil {
				recipe = found
				return false
			}
		}
		return true
	})

	return recipe
}

// topLevelObjects normalizes a decoded JSON-LD payload, which may be a
// single object or an array of objects, into a slice of objects.
func topLevelObjects(decoded any) []map[string]any {
	switch v := decoded.(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		var objects []map[string]any
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				objects = append(objects, obj)
			}
		}
		return objects
	default:
		return nil
	}
}

func recipeFromObject(item map[string]any) map[string]any {
	if item["@type"] == "Recipe" {
		return item
	}
	graph, ok := item["@graph"].([]any)
	if !ok {
		return nil
	}
	for _, node := range graph {
		if obj, ok := node.(map[string]any); ok && obj["@type"] == "Recipe" {
			return obj
		}
	}
	return nil
}
