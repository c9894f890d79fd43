package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *int
	}{
		{"hours and minutes", "PT1H30M", intPtr(90)},
		{"hours only", "PT2H", intPtr(120)},
		{"minutes only", "PT45M", intPtr(45)},
		{"seconds round up", "PT10M30S", intPtr(11)},
		{"nil input", nil, nil},
		{"empty string", "", nil},
		{"garbage", "garbage", nil},
		{"non-string", 42.0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDuration(tt.input))
		})
	}
}

func TestParseServings(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *int
	}{
		{"number", 4.0, intPtr(4)},
		{"string with count", "4 servings", intPtr(4)},
		{"list of strings", []any{"6 servings"}, intPtr(6)},
		{"no digits", "many", nil},
		{"empty list", []any{}, nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseServings(tt.input))
		})
	}
}

func TestExtractText(t *testing.T) {
	assert.Equal(t, "hello world", *extractText("  hello world  "))
	assert.Equal(t, "line1\nline2", *extractText([]any{"line1", "line2"}))
	assert.Equal(t, "content", *extractText(map[string]any{"text": "content"}))
	assert.Equal(t, "title", *extractText(map[string]any{"name": "title"}))
	assert.Nil(t, extractText(nil))
	assert.Nil(t, extractText(123.0))
}

func TestParseInstructions(t *testing.T) {
	assert.Nil(t, parseInstructions(nil))
	assert.Equal(t, "Mix well.", *parseInstructions("  Mix well.  "))
	assert.Equal(t, "1. Mix\n2. Bake", *parseInstructions([]any{"Mix", "Bake"}))

	steps := []any{
		map[string]any{"text": "Chop the onions"},
		map[string]any{"name": "Saute until golden"},
		map[string]any{"irrelevant": "skipped"},
	}
	assert.Equal(t, "1. Chop the onions\n2. Saute until golden", *parseInstructions(steps))

	mixed := []any{"Mix", map[string]any{"text": "Bake"}}
	assert.Equal(t, "1. Mix\n2. Bake", *parseInstructions(mixed))
}

func TestParseIngredients(t *testing.T) {
	assert.Equal(t, []string{"2 cups flour", "1 egg"}, parseIngredients([]any{" 2 cups flour ", "1 egg"}))
	assert.Equal(t, []string{}, parseIngredients("not a list"))
	assert.Equal(t, []string{}, parseIngredients(nil))
	assert.Equal(t, []string{"salt"}, parseIngredients([]any{nil, "", "salt"}))
}

func TestParseImageURL(t *testing.T) {
	assert.Equal(t, "https://x/a.jpg", *parseImageURL("https://x/a.jpg"))
	assert.Equal(t, "https://x/b.jpg", *parseImageURL([]any{"https://x/b.jpg"}))
	assert.Equal(t, "https://x/c.jpg", *parseImageURL([]any{map[string]any{"url": "https://x/c.jpg"}}))
	assert.Equal(t, "https://x/d.jpg", *parseImageURL(map[string]any{"url": "https://x/d.jpg"}))
	assert.Nil(t, parseImageURL([]any{}))
	assert.Nil(t, parseImageURL(nil))
	assert.Nil(t, parseImageURL(7.0))
}

func intPtr(n int) *int { return &n }

func requireNotNil[T any](t *testing.T, p *T) T {
	t.Helper()
	require.NotNil(t, p)
	return *p
}
