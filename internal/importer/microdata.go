package importer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractRecipeMicrodata returns the properties of the first microdata item
// whose itemtype mentions Recipe, or nil when the page carries none.
func extractRecipeMicrodata(doc *goquery.Document) map[string]any {
	var props map[string]any

	doc.Find("[itemscope]").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		itemtype, _ := item.Attr("itemtype")
		if !strings.Contains(itemtype, "Recipe") {
			return true
		}
		props = itemProperties(item)
		return false
	})

	return props
}

// itemProperties collects the itemprop values scoped to item. Properties of
// nested itemscopes belong to the nested item and become nested maps.
// Repeated property names accumulate into a list.
func itemProperties(item *goquery.Selection) map[string]any {
	props := map[string]any{}

	item.Find("[itemprop]").Each(func(_ int, el *goquery.Selection) {
		owner := el.Parent().Closest("[itemscope]")
		if owner.Length() > 0 && owner.Get(0) != item.Get(0) {
			return
		}
		name, _ := el.Attr("itemprop")
		if name == "" {
			return
		}
		addProperty(props, name, propertyValue(el))
	})

	return props
}

func addProperty(props map[string]any, name string, value any) {
	existing, ok := props[name]
	if !ok {
		props[name] = value
		return
	}
	if list, ok := existing.([]any); ok {
		props[name] = append(list, value)
		return
	}
	props[name] = []any{existing, value}
}

// propertyValue resolves a microdata property per the HTML spec: nested
// items become maps, content attributes win, URL-carrying elements yield
// their URL, everything else falls back to trimmed text.
func propertyValue(el *goquery.Selection) any {
	if _, nested := el.Attr("itemscope"); nested {
		return itemProperties(el)
	}
	if content, ok := el.Attr("content"); ok {
		return content
	}
	switch goquery.NodeName(el) {
	case "a", "area", "link":
		if href, ok := el.Attr("href"); ok {
			return href
		}
	case "img", "audio", "video", "source", "iframe", "embed":
		if src, ok := el.Attr("src"); ok {
			return src
		}
	case "time":
		if datetime, ok := el.Attr("datetime"); ok {
			return datetime
		}
	}
	return strings.TrimSpace(el.Text())
}
