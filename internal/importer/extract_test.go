package importer

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractRecipeJSONLDTopLevel(t *testing.T) {
	doc := docFromHTML(t, `<html><head><script type="application/ld+json">
		{"@type": "Recipe", "name": "Pancakes"}
	</script></head></html>`)

	recipe := extractRecipeJSONLD(doc)
	require.NotNil(t, recipe)
	assert.Equal(t, "Pancakes", recipe["name"])
}

func TestExtractRecipeJSONLDGraph(t *testing.T) {
	doc := docFromHTML(t, `<html><head><script type="application/ld+json">
		{"@context": "https://schema.org", "@graph": [
			{"@type": "WebSite", "name": "Some Blog"},
			{"@type": "Recipe", "name": "Lasagna"}
		]}
	</script></head></html>`)

	recipe := extractRecipeJSONLD(doc)
	require.NotNil(t, recipe)
	assert.Equal(t, "Lasagna", recipe["name"])
}

func TestExtractRecipeJSONLDArrayPayload(t *testing.T) {
	doc := docFromHTML(t, `<html><head><script type="application/ld+json">
		[{"@type": "BreadcrumbList"}, {"@type": "Recipe", "name": "Stew"}]
	</script></head></html>`)

	recipe := extractRecipeJSONLD(doc)
	require.NotNil(t, recipe)
	assert.Equal(t, "Stew", recipe["name"])
}

func TestExtractRecipeJSONLDNonRecipe(t *testing.T) {
	doc := docFromHTML(t, `<html><head><script type="application/ld+json">
		{"@type": "Article", "name": "Not food"}
	</script></head></html>`)

	assert.Nil(t, extractRecipeJSONLD(doc))
}

func TestExtractRecipeJSONLDMalformedBlockSkipped(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">{not json</script>
		<script type="application/ld+json">{"@type": "Recipe", "name": "Soup"}</script>
	</head></html>`)

	recipe := extractRecipeJSONLD(doc)
	require.NotNil(t, recipe)
	assert.Equal(t, "Soup", recipe["name"])
}

func TestExtractRecipeJSONLDEmptyPage(t *testing.T) {
	assert.Nil(t, extractRecipeJSONLD(docFromHTML(t, `<html><body>no recipe here</body></html>`)))
}

func TestExtractRecipeMicrodata(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div itemscope itemtype="https://schema.org/Recipe">
			<h1 itemprop="name">Tacos</h1>
			<meta itemprop="prepTime" content="PT20M">
			<li itemprop="recipeIngredient">2 tortillas</li>
			<li itemprop="recipeIngredient">100g beef</li>
		</div>
	</body></html>`)

	props := extractRecipeMicrodata(doc)
	require.NotNil(t, props)
	assert.Equal(t, "Tacos", props["name"])
	assert.Equal(t, "PT20M", props["prepTime"])
	assert.Equal(t, []any{"2 tortillas", "100g beef"}, props["recipeIngredient"])
}

func TestExtractRecipeMicrodataSkipsNestedItems(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div itemscope itemtype="https://schema.org/Recipe">
			<span itemprop="name">Salad</span>
			<div itemprop="author" itemscope itemtype="https://schema.org/Person">
				<span itemprop="name">Jamie</span>
			</div>
		</div>
	</body></html>`)

	props := extractRecipeMicrodata(doc)
	require.NotNil(t, props)
	assert.Equal(t, "Salad", props["name"])
	author, ok := props["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jamie", author["name"])
}

func TestExtractRecipeMicrodataNoRecipeItem(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<div itemscope itemtype="https://schema.org/Person">
			<span itemprop="name">Nobody</span>
		</div>
	</body></html>`)

	assert.Nil(t, extractRecipeMicrodata(doc))
}
